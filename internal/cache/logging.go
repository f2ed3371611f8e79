package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"astro-proxy/internal/metrics"
	"astro-proxy/pkg/logging"
)

// LoggingResponseCache wraps a ResponseCache with logging + metrics.
type LoggingResponseCache struct {
	inner ResponseCache
}

// NewLoggingResponseCache returns a cache that logs and records metrics.
func NewLoggingResponseCache(inner ResponseCache) ResponseCache {
	return &LoggingResponseCache{inner: inner}
}

func (c *LoggingResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, ok, err := c.inner.Get(ctx, key)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	result := "miss"
	switch {
	case err != nil:
		result = "error"
		metrics.CacheMissesTotal.Inc()
	case ok:
		result = "hit"
		metrics.CacheHitsTotal.Inc()
	default:
		metrics.CacheMissesTotal.Inc()
	}

	fields := append(keyFields(key),
		zap.String("cache_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs),
	)

	logger := logging.L(ctx)
	if err != nil {
		logger.Error("response_cache_get", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("response_cache_get", fields...)
	}

	return value, ok, err
}

func (c *LoggingResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := c.inner.Set(ctx, key, value, ttl)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	fields := append(keyFields(key),
		zap.Int("value_bytes", len(value)),
		zap.Duration("ttl", ttl),
		zap.Float64("latency_ms", latencyMs),
	)

	logger := logging.L(ctx)
	if err != nil {
		logger.Error("response_cache_set", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("response_cache_set", fields...)
	}

	return err
}

func keyFields(key string) []zap.Field {
	fields := []zap.Field{zap.String("cache_key", key)}
	if k, ok := parseResponseKey(key); ok {
		fields = append(fields,
			zap.String("route", k.Route),
			zap.String("hash", k.Hash),
		)
	}
	return fields
}
