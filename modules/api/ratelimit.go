package api

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis/v3"
)

// RateLimit configures the per-client request limiter. Max 0 disables it.
// Counters live in Redis when RedisAddr is set and in process memory otherwise.
type RateLimit struct {
	Max       int
	Window    time.Duration
	RedisAddr string
}

// newLimitStorage connects the limiter to Redis. It returns nil when no
// address is configured.
func newLimitStorage(cfg RateLimit) fiber.Storage {
	if cfg.Max <= 0 || cfg.RedisAddr == "" {
		return nil
	}
	host, port := parseRedisAddr(cfg.RedisAddr)
	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		PoolSize: 10,
	})
}

func newLimiter(cfg RateLimit, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "rate_limited",
				Message: "Too many requests",
			})
		},
	})
}

// parseRedisAddr parses "host:port" into host and port.
// Returns defaults (127.0.0.1:6379) for invalid or missing values.
func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}
	return host, port
}
