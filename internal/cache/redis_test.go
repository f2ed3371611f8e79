package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to REDIS_ADDR (default localhost:6379) on DB 15
// and skips the test when no Redis is reachable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestRedisResponseCache_SetGet(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedisResponseCache(client, RedisConfig{Prefix: "astroproxy-test"})
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte(`{"ok":true}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(got) != `{"ok":true}` {
		t.Fatalf("unexpected Get result %q hit=%v err=%v", got, hit, err)
	}

	if n := client.Exists(ctx, "astroproxy-test:k").Val(); n != 1 {
		t.Fatalf("expected prefixed key in redis")
	}
}

func TestRedisResponseCache_Expiry(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedisResponseCache(client, RedisConfig{})
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Fatalf("expected miss after TTL")
	}
}

func TestRedisResponseCache_CancelledContext(t *testing.T) {
	c := NewRedisResponseCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), RedisConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Fatalf("expected context error")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err == nil {
		t.Fatalf("expected context error")
	}
}
