package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/kuba-04/task-manager-rest-demo/config"
	"github.com/kuba-04/task-manager-rest-demo/modules/api"
	"github.com/kuba-04/task-manager-rest-demo/modules/cache"
	"github.com/kuba-04/task-manager-rest-demo/modules/notification"
	"github.com/kuba-04/task-manager-rest-demo/modules/task"
	"github.com/kuba-04/task-manager-rest-demo/modules/user"
)

func main() {
	log.Println("=== Task Manager REST Demo ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(user.NewModule(user.Config{
		Driver: cfg.StorageDriver,
		DBPath: cfg.UserDBPath,
		Debug:  cfg.DBDebug,
		Cache: cache.Config{
			RedisAddr: cfg.RedisAddr,
			Prefix:    cfg.CachePrefix,
			TTL:       cfg.CacheTTL,
		},
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}))
	app.Register(notification.NewModuleWithCapacity(cfg.NotificationLog))
	app.Register(task.NewModule(task.Config{
		Driver:          cfg.StorageDriver,
		DBPath:          cfg.TaskDBPath,
		Debug:           cfg.DBDebug,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}))
	app.Register(api.NewModule(api.Config{
		Port: cfg.HTTPPort,
		RateLimit: api.RateLimit{
			Max:       cfg.RateLimitMax,
			Window:    cfg.RateLimitWindow,
			RedisAddr: cfg.RedisAddr,
		},
	}))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Storage: %s (users: %s, tasks: %s)", cfg.StorageDriver, cfg.UserDBPath, cfg.TaskDBPath)
	if cfg.RedisAddr != "" {
		log.Printf("User cache: redis at %s (ttl %s)", cfg.RedisAddr, cfg.CacheTTL)
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  POST   /api/users              - Create a user")
	log.Println("  GET    /api/users              - Search users")
	log.Println("  GET    /api/users/:id          - Get a user by ID")
	log.Println("  DELETE /api/users/:id          - Delete a user")
	log.Println("  POST   /api/tasks              - Create a task")
	log.Println("  GET    /api/tasks              - Search tasks")
	log.Println("  GET    /api/tasks/:id          - Get a task by ID")
	log.Println("  PUT    /api/tasks/:id          - Edit a task")
	log.Println("  PATCH  /api/tasks/:id/status   - Change task status")
	log.Println("  PATCH  /api/tasks/:id/assign   - Assign users")
	log.Println("  DELETE /api/tasks/:id          - Delete a task")
	log.Println("  GET    /health                 - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
