package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponseCache(t *testing.T) {
	c, err := NewResponseCache(Config{Backend: BackendMemory, TTL: time.Hour}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryResponseCache{}, c)

	c, err = NewResponseCache(Config{Backend: BackendNone, TTL: time.Hour}, nil)
	require.NoError(t, err)
	assert.IsType(t, NoopCache{}, c)

	c, err = NewResponseCache(Config{Backend: BackendMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, NoopCache{}, c, "zero TTL disables caching")

	_, err = NewResponseCache(Config{Backend: BackendRedis, TTL: time.Hour}, nil)
	assert.Error(t, err)

	_, err = NewResponseCache(Config{Backend: "memcached", TTL: time.Hour}, nil)
	assert.Error(t, err)
}
