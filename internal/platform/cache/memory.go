package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is an in-process Store. Entries expire ttl after insertion,
// regardless of how often they are read.
type MemoryStore[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewMemoryStore creates a MemoryStore. A size of 0 leaves the store unbounded,
// so TTL is the only eviction.
func NewMemoryStore[V any](size int, ttl time.Duration) *MemoryStore[V] {
	return &MemoryStore[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

func (s *MemoryStore[V]) Get(_ context.Context, key string) (V, bool) {
	return s.lru.Get(key)
}

func (s *MemoryStore[V]) Set(_ context.Context, key string, value V) {
	s.lru.Add(key, value)
}

// Len reports the number of live entries.
func (s *MemoryStore[V]) Len() int {
	return s.lru.Len()
}
