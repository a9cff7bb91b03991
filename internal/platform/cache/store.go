// Package cache provides TTL-bounded key/value stores used to memoize
// exchange rate lookups. Entries are never invalidated explicitly; an entry
// past its TTL reads as absent.
package cache

import "context"

// Store is a concurrency-safe key/value store with a fixed time-to-live per entry.
// Implementations never return an expired value.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V)
}
