package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("RATE_CACHE_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultTreasuryBaseURL, cfg.TreasuryBaseURL)
	assert.Equal(t, 30*time.Second, cfg.TreasuryTimeout)
	assert.Equal(t, 24*time.Hour, cfg.RateCacheTTL)
	assert.Equal(t, 180, cfg.RateLookbackDays)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, 3, cfg.RetryMaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryBaseDelay)
	assert.Equal(t, uint32(5), cfg.BreakerFailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenDuration)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_CACHE_TTL", "1h")
	t.Setenv("BREAKER_OPEN_DURATION", "not-a-duration")
	t.Setenv("CACHE_BACKEND", "REDIS")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.RateCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenDuration)
	assert.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_RedisWithoutAddressFallsBackToMemory(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDRESS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
}
