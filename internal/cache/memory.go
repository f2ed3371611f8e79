package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	createdAt time.Time
	expiresAt time.Time
}

// MemoryOptions configures a MemoryResponseCache.
type MemoryOptions struct {
	// MaxEntries caps the number of stored entries. When full, expired
	// entries are purged first, then the oldest entry is evicted.
	// Zero or negative means unbounded.
	MaxEntries int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// MemoryResponseCache is a process-local cache with lazy expiry: there is
// no background sweep, an expired entry is removed by the Get that finds it.
type MemoryResponseCache struct {
	mu         sync.Mutex
	items      map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryResponseCache(opts MemoryOptions) *MemoryResponseCache {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &MemoryResponseCache{
		items:      make(map[string]memoryEntry),
		maxEntries: opts.MaxEntries,
		now:        now,
	}
}

// Get returns the value stored under key while it is younger than its TTL.
func (c *MemoryResponseCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key, replacing any previous entry.
// A non-positive ttl removes the key instead.
func (c *MemoryResponseCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.items, key)
		return nil
	}

	// Copy to decouple from caller's buffer
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	now := c.now()
	if _, exists := c.items[key]; !exists && c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.makeRoomLocked(now)
	}

	c.items[key] = memoryEntry{
		value:     valueCopy,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	return nil
}

// makeRoomLocked frees at least one slot. Caller holds c.mu.
func (c *MemoryResponseCache) makeRoomLocked(now time.Time) {
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
		}
	}
	if len(c.items) < c.maxEntries {
		return
	}

	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.items {
		if !found || e.createdAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.createdAt, true
		}
	}
	if found {
		delete(c.items, oldestKey)
	}
}

// Len returns the number of items currently in the cache, expired or not.
func (c *MemoryResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes all items from cache.
func (c *MemoryResponseCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]memoryEntry)
	c.mu.Unlock()
}
