// Package api exposes the user and task services over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kuba-04/task-manager-rest-demo/modules/task"
	"github.com/kuba-04/task-manager-rest-demo/modules/user"
)

// Config configures the HTTP server.
type Config struct {
	Port      int
	RateLimit RateLimit
}

// APIModule is the driving adapter that exposes REST endpoints.
// It calls into the user and task modules via their ports.
type APIModule struct {
	cfg          Config
	app          *fiber.App
	limitStorage fiber.Storage
	userAdapter  user.UserPort
	taskAdapter  task.TaskPort
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*APIModule)(nil)
	_ mono.DependentModule       = (*APIModule)(nil)
	_ mono.HealthCheckableModule = (*APIModule)(nil)
)

// NewModule creates a new APIModule.
func NewModule(cfg Config) *APIModule {
	return &APIModule{cfg: cfg}
}

// NewModuleWithPorts creates an APIModule over explicit ports instead of the
// dependency service containers.
func NewModuleWithPorts(cfg Config, users user.UserPort, tasks task.TaskPort) *APIModule {
	return &APIModule{
		cfg:         cfg,
		userAdapter: users,
		taskAdapter: tasks,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"user", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "user":
		m.userAdapter = user.NewUserAdapter(container)
	case "task":
		m.taskAdapter = task.NewTaskAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
// Returns an error if required dependencies are not set.
func (m *APIModule) Start(_ context.Context) error {
	if m.userAdapter == nil {
		return fmt.Errorf("userAdapter dependency not set")
	}
	if m.taskAdapter == nil {
		return fmt.Errorf("taskAdapter dependency not set")
	}

	m.limitStorage = newLimitStorage(m.cfg.RateLimit)
	m.app = m.newApp()

	addr := fmt.Sprintf(":%d", m.cfg.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", addr)
	return nil
}

// newApp builds the Fiber app with all routes.
func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	app.Use(recover.New())
	if m.cfg.RateLimit.Max > 0 {
		app.Use(newLimiter(m.cfg.RateLimit, m.limitStorage))
	}
	m.setupRoutes(app)
	return app
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	if err := m.app.Shutdown(); err != nil {
		return err
	}
	if m.limitStorage != nil {
		return m.limitStorage.Close()
	}
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port":       m.cfg.Port,
			"rate_limit": m.cfg.RateLimit.Max,
		},
	}
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
