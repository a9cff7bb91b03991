package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRate struct {
	Currency string `json:"currency"`
	Rate     string `json:"rate"`
}

// Requires a reachable Redis at REDIS_ADDRESS.
func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer client.Close()

	prefix := "test:" + uuid.NewString() + ":"
	store := NewRedisStore[cachedRate](client, prefix, time.Minute, nil)

	_, ok := store.Get(ctx, "exchange_rate_Euro_2024-01-15")
	assert.False(t, ok)

	store.Set(ctx, "exchange_rate_Euro_2024-01-15", cachedRate{Currency: "Euro", Rate: "0.92"})
	got, ok := store.Get(ctx, "exchange_rate_Euro_2024-01-15")
	require.True(t, ok)
	assert.Equal(t, cachedRate{Currency: "Euro", Rate: "0.92"}, got)

	ttl, err := client.TTL(ctx, prefix+"exchange_rate_Euro_2024-01-15").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	client.Del(ctx, prefix+"exchange_rate_Euro_2024-01-15")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
