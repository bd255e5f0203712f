// Package config loads the application settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/kuba-04/task-manager-rest-demo/database"
)

// Config holds every setting of the application.
type Config struct {
	HTTPPort        int           `env:"HTTP_PORT"         envDefault:"3000"`
	StorageDriver   string        `env:"STORAGE_DRIVER"    envDefault:"sqlite"`
	TaskDBPath      string        `env:"TASK_DB_PATH"      envDefault:"tasks.db"`
	UserDBPath      string        `env:"USER_DB_PATH"      envDefault:"users.db"`
	DBDebug         bool          `env:"DB_DEBUG"          envDefault:"false"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	CachePrefix     string        `env:"CACHE_PREFIX"      envDefault:"user:"`
	CacheTTL        time.Duration `env:"CACHE_TTL"         envDefault:"5m"`
	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int           `env:"MAX_PAGE_SIZE"     envDefault:"100"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"  envDefault:"30s"`
	LogLevel        string        `env:"LOG_LEVEL"         envDefault:"info"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX"    envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	NotificationLog int           `env:"NOTIFICATION_LOG_SIZE" envDefault:"1000"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case database.DriverSQLite, database.DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive, got default %d and max %d", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE %d exceeds MAX_PAGE_SIZE %d", c.DefaultPageSize, c.MaxPageSize)
	}
	if c.RateLimitMax < 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("invalid rate limit %d per %s", c.RateLimitMax, c.RateLimitWindow)
	}
	if c.NotificationLog <= 0 {
		return fmt.Errorf("NOTIFICATION_LOG_SIZE must be positive, got %d", c.NotificationLog)
	}
	switch c.LogLevel {
	case "info", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}
