package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[string](0, time.Hour)

	_, ok := store.Get(ctx, "missing")
	assert.False(t, ok)

	store.Set(ctx, "exchange_rate_Euro_2024-01-15", "0.92")
	got, ok := store.Get(ctx, "exchange_rate_Euro_2024-01-15")
	require.True(t, ok)
	assert.Equal(t, "0.92", got)

	store.Set(ctx, "exchange_rate_Euro_2024-01-15", "0.93")
	got, _ = store.Get(ctx, "exchange_rate_Euro_2024-01-15")
	assert.Equal(t, "0.93", got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[int](0, 50*time.Millisecond)

	store.Set(ctx, "k", 1)
	_, ok := store.Get(ctx, "k")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := store.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[int](0, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key_%d", j%10)
				store.Set(ctx, key, n)
				_, _ = store.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}
