package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/kuba-04/task-manager-rest-demo/database"
	"github.com/kuba-04/task-manager-rest-demo/events"
	"github.com/kuba-04/task-manager-rest-demo/modules/cache"
	"gorm.io/gorm"
)

// Config configures the user module.
type Config struct {
	Driver          string
	DBPath          string
	Debug           bool
	Cache           cache.Config // an empty RedisAddr disables the cache
	DefaultPageSize int
	MaxPageSize     int
}

// UserModule provides user management services.
type UserModule struct {
	cfg      Config
	store    Store
	db       *gorm.DB
	cache    *cache.Cache
	service  *Service
	eventBus mono.EventBus
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*UserModule)(nil)
	_ mono.ServiceProviderModule = (*UserModule)(nil)
	_ mono.EventEmitterModule    = (*UserModule)(nil)
	_ mono.HealthCheckableModule = (*UserModule)(nil)
)

// NewModule creates a new UserModule. Storage is opened in Start.
func NewModule(cfg Config) *UserModule {
	return &UserModule{cfg: cfg}
}

// NewModuleWithStore creates a UserModule backed by store instead of the
// configured driver.
func NewModuleWithStore(cfg Config, store Store) *UserModule {
	return &UserModule{
		cfg:   cfg,
		store: store,
	}
}

// Name returns the module name.
func (m *UserModule) Name() string {
	return "user"
}

// SetEventBus receives the event bus used to publish user events.
func (m *UserModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events published by this module.
func (m *UserModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.UserCreatedV1.ToBase(),
		events.UserDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *UserModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-user", json.Unmarshal, json.Marshal, m.createUser,
	); err != nil {
		return fmt.Errorf("failed to register create-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.getUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-user", json.Unmarshal, json.Marshal, m.deleteUser,
	); err != nil {
		return fmt.Errorf("failed to register delete-user service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "find-users", json.Unmarshal, json.Marshal, m.findUsers,
	); err != nil {
		return fmt.Errorf("failed to register find-users service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-user", json.Unmarshal, json.Marshal, m.validateUser,
	); err != nil {
		return fmt.Errorf("failed to register validate-user service: %w", err)
	}

	log.Printf("[user] Registered services: create-user, get-user, delete-user, find-users, validate-user")
	return nil
}

// Start opens the configured storage and builds the user service.
func (m *UserModule) Start(ctx context.Context) error {
	if m.store == nil {
		store, err := m.openStore()
		if err != nil {
			return err
		}
		m.store = store
	}

	if m.cfg.Cache.RedisAddr != "" {
		c, err := cache.Connect(ctx, m.cfg.Cache)
		if err != nil {
			return err
		}
		m.cache = c
		m.store = NewCachedStore(m.store, c)
		log.Printf("[user] Caching lookups in Redis at %s (prefix: %s, TTL: %s)", m.cfg.Cache.RedisAddr, m.cfg.Cache.Prefix, m.cfg.Cache.TTL)
	}

	m.service = NewService(m.store)
	if m.eventBus == nil {
		log.Println("[user] Warning: eventBus not set, events will not be published")
	}
	log.Println("[user] Module started")
	return nil
}

func (m *UserModule) openStore() (Store, error) {
	switch m.cfg.Driver {
	case database.DriverMemory:
		log.Println("[user] Using in-memory storage")
		return NewMemoryStore(), nil
	case database.DriverSQLite, "":
		log.Printf("[user] Connecting to SQLite database: %s", m.cfg.DBPath)
		db, err := database.Open(m.cfg.DBPath, m.cfg.Debug, &Record{})
		if err != nil {
			return nil, err
		}
		m.db = db
		return NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", m.cfg.Driver)
	}
}

// Stop closes the cache and database connections.
func (m *UserModule) Stop(_ context.Context) error {
	if m.cache != nil {
		if err := m.cache.Close(); err != nil {
			log.Printf("[user] Error closing Redis connection: %v", err)
		}
	}
	if m.db != nil {
		if err := database.Close(m.db); err != nil {
			return err
		}
	}
	log.Println("[user] Module stopped")
	return nil
}

// Health reports storage reachability and cache statistics.
func (m *UserModule) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}

	details := map[string]any{
		"driver": m.driver(),
	}
	if m.db != nil {
		if err := database.Ping(ctx, m.db); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("database ping failed: %v", err),
			}
		}
		details["path"] = m.cfg.DBPath
	}
	if m.cache != nil {
		if err := m.cache.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("cache ping failed: %v", err),
			}
		}
		details["cache"] = m.cache.Stats()
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

func (m *UserModule) driver() string {
	if m.cfg.Driver == "" {
		return database.DriverSQLite
	}
	return m.cfg.Driver
}
