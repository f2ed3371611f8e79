package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ASTRO_BASE_URL", "ASTRO_USER_ID", "ASTRO_API_KEY", "CACHE_BACKEND", "CACHE_TTL", "CACHE_MAX_ENTRIES", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "https://json.astrologyapi.com/v1", cfg.BaseURL)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 1000, cfg.CacheMaxEntries)
	assert.False(t, cfg.Credentials.Configured())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ASTRO_USER_ID", "12345")
	t.Setenv("ASTRO_API_KEY", "secret")
	t.Setenv("CACHE_BACKEND", "none")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("CACHE_MAX_ENTRIES", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.Credentials.Configured())
	assert.Equal(t, "none", cfg.CacheBackend)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 0, cfg.CacheMaxEntries)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "one day")

	_, err := LoadConfig()
	assert.Error(t, err)
}
