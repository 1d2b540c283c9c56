// Package cache contains a cache interface and its redis implementation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

//go:generate mockgen -destination=./mock/cache.go -package=mock -source=cache.go

// ErrMiss is returned when key is absent.
var ErrMiss = errors.New("cache miss")

// Cache stores json-encoded values by key.
type Cache interface {
	Get(ctx context.Context, key string, v interface{}) error
	Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

type redisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates redis-backed cache. Every key is prefixed with prefix.
func NewRedis(client redis.UniversalClient, prefix string) Cache {
	return redisCache{
		client: client,
		prefix: prefix,
	}
}

func (c redisCache) Get(ctx context.Context, key string, v interface{}) error {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (c redisCache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}
