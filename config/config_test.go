package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "tasks.db", cfg.TaskDBPath)
	assert.Equal(t, "users.db", cfg.UserDBPath)
	assert.False(t, cfg.DBDebug)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "user:", cfg.CachePrefix)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 1000, cfg.NotificationLog)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("MAX_PAGE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.MaxPageSize)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "not a number", key: "HTTP_PORT", value: "not-an-int", want: "parse env:"},
		{name: "unknown driver", key: "STORAGE_DRIVER", value: "postgres", want: "STORAGE_DRIVER"},
		{name: "zero page size", key: "DEFAULT_PAGE_SIZE", value: "0", want: "page sizes must be positive"},
		{name: "default above max", key: "DEFAULT_PAGE_SIZE", value: "500", want: "exceeds MAX_PAGE_SIZE"},
		{name: "negative rate limit", key: "RATE_LIMIT_MAX", value: "-1", want: "invalid rate limit"},
		{name: "empty notification log", key: "NOTIFICATION_LOG_SIZE", value: "0", want: "NOTIFICATION_LOG_SIZE"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "trace", want: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
