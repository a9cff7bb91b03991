package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store shared between processes. Values are stored as JSON
// under prefix+key with the store's TTL. Redis failures degrade to cache misses.
type RedisStore[V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore creates a RedisStore on top of an existing client.
func NewRedisStore[V any](client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisStore[V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore[V]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *RedisStore[V]) Get(ctx context.Context, key string) (V, bool) {
	var value V

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Rate cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return value, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("Rate cache entry is not decodable", slog.String("key", key), slog.String("error", err.Error()))
		return value, false
	}
	return value, true
}

func (s *RedisStore[V]) Set(ctx context.Context, key string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to encode rate cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	if err := s.client.Set(ctx, s.prefix+key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("Rate cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
