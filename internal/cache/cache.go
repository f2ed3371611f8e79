package cache

import (
	"context"
	"time"
)

// ResponseCache stores upstream payloads keyed by ResponseKey.String().
// Implemented by the memory cache (default), Redis and a no-op cache.
//
// Get reports a miss for expired entries; backends that keep expired
// entries around drop them during that lookup.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NoopCache never hits and discards writes. It is used when caching is
// switched off so the handler keeps a single code path.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
