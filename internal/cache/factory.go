package cache

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

type Config struct {
	Backend    string // memory | redis | none
	TTL        time.Duration
	Prefix     string
	MaxEntries int
}

// Enabled reports whether responses should be cached at all.
func (c Config) Enabled() bool {
	return c.Backend != BackendNone && c.TTL > 0
}

// NewResponseCache selects the backend named by cfg.Backend.
func NewResponseCache(cfg Config, redisClient *redis.Client) (ResponseCache, error) {
	if !cfg.Enabled() {
		return NoopCache{}, nil
	}

	switch cfg.Backend {
	case BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("cache backend %q requires a redis client", cfg.Backend)
		}
		return NewRedisResponseCache(redisClient, RedisConfig{
			Prefix: cfg.Prefix,
		}), nil
	case BackendMemory, "":
		return NewMemoryResponseCache(MemoryOptions{
			MaxEntries: cfg.MaxEntries,
		}), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
