package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/kuba-04/task-manager-rest-demo/database"
	"github.com/kuba-04/task-manager-rest-demo/domain/user"
	"github.com/kuba-04/task-manager-rest-demo/events"
	usermodule "github.com/kuba-04/task-manager-rest-demo/modules/user"
	"gorm.io/gorm"
)

// Config configures the task module.
type Config struct {
	Driver          string
	DBPath          string
	Debug           bool
	DefaultPageSize int
	MaxPageSize     int
}

// TaskModule provides task management services (core domain).
type TaskModule struct {
	cfg      Config
	store    Store
	db       *gorm.DB
	users    UserChecker
	service  *Service
	eventBus mono.EventBus
}

var (
	_ mono.Module                = (*TaskModule)(nil)
	_ mono.ServiceProviderModule = (*TaskModule)(nil)
	_ mono.DependentModule       = (*TaskModule)(nil)
	_ mono.EventEmitterModule    = (*TaskModule)(nil)
	_ mono.EventConsumerModule   = (*TaskModule)(nil)
	_ mono.HealthCheckableModule = (*TaskModule)(nil)
)

// NewModule creates a new TaskModule. Storage is opened in Start.
func NewModule(cfg Config) *TaskModule {
	return &TaskModule{cfg: cfg}
}

// NewModuleWithStore creates a TaskModule with explicit collaborators instead
// of the configured driver and the user module port.
func NewModuleWithStore(cfg Config, store Store, users UserChecker) *TaskModule {
	return &TaskModule{
		cfg:   cfg,
		store: store,
		users: users,
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) Dependencies() []string {
	return []string{"user"}
}

func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "user" {
		m.users = usermodule.NewUserAdapter(container)
	}
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskStatusChangedV1.ToBase(),
		events.TaskUsersAssignedV1.ToBase(),
		events.TaskEditedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// RegisterEventConsumers subscribes to user deletions to unassign the
// deleted user from its tasks.
func (m *TaskModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.UserDeletedV1, m.handleUserDeleted, m); err != nil {
		return fmt.Errorf("failed to register UserDeleted consumer: %w", err)
	}

	log.Printf("[task] Registered event consumers: UserDeleted")
	return nil
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "change-task-status", json.Unmarshal, json.Marshal, m.changeTaskStatus,
	); err != nil {
		return fmt.Errorf("failed to register change-task-status service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "assign-users", json.Unmarshal, json.Marshal, m.assignUsers,
	); err != nil {
		return fmt.Errorf("failed to register assign-users service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "edit-task", json.Unmarshal, json.Marshal, m.editTask,
	); err != nil {
		return fmt.Errorf("failed to register edit-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "find-tasks", json.Unmarshal, json.Marshal, m.findTasks,
	); err != nil {
		return fmt.Errorf("failed to register find-tasks service: %w", err)
	}

	log.Printf("[task] Registered services: create-task, get-task, change-task-status, assign-users, edit-task, delete-task, find-tasks")
	return nil
}

func (m *TaskModule) Start(_ context.Context) error {
	if m.users == nil {
		return fmt.Errorf("user dependency not set")
	}

	if m.store == nil {
		store, err := m.openStore()
		if err != nil {
			return err
		}
		m.store = store
	}
	m.service = NewService(m.store, m.users)

	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}
	log.Println("[task] Module started (depends on: user)")
	return nil
}

func (m *TaskModule) openStore() (Store, error) {
	switch m.cfg.Driver {
	case database.DriverMemory:
		log.Println("[task] Using in-memory storage")
		return NewMemoryStore(), nil
	case database.DriverSQLite, "":
		log.Printf("[task] Connecting to SQLite database: %s", m.cfg.DBPath)
		db, err := database.Open(m.cfg.DBPath, m.cfg.Debug, Models()...)
		if err != nil {
			return nil, err
		}
		m.db = db
		return NewRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", m.cfg.Driver)
	}
}

func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		if err := database.Close(m.db); err != nil {
			return err
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health reports storage reachability.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}

	details := map[string]any{}
	if m.db != nil {
		if err := database.Ping(ctx, m.db); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("database ping failed: %v", err),
			}
		}
		details["driver"] = database.DriverSQLite
		details["path"] = m.cfg.DBPath
	} else {
		details["driver"] = database.DriverMemory
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// handleUserDeleted removes the deleted user from every task that references it.
func (m *TaskModule) handleUserDeleted(ctx context.Context, event events.UserDeletedEvent, _ *mono.Msg) error {
	userID, err := user.ParseID(event.UserID)
	if err != nil {
		log.Printf("[task] Ignoring UserDeleted event: %v", err)
		return nil
	}

	changed, err := m.service.UnassignUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to unassign user %s: %w", userID, err)
	}
	log.Printf("[task] Unassigned deleted user %s from %d task(s)", userID, changed)
	return nil
}

// publish sends an event when an event bus is set. Publishing is best effort.
func (m *TaskModule) publish(name, taskID string, send func(mono.EventBus) error) {
	if m.eventBus == nil {
		return
	}
	if err := send(m.eventBus); err != nil {
		log.Printf("[task] Warning: failed to publish %s event for task %s: %v", name, taskID, err)
	}
}
