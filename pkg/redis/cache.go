package redis

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key does not exist
var ErrCacheMiss = errors.New("key not found")

// Cache is the read-through cache used by the services
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

var _ Cache = (*Client)(nil)

// NoopCache never stores anything; it is used when Redis is not configured
type NoopCache struct{}

// NewNoopCache creates a cache that always misses
func NewNoopCache() Cache {
	return NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (NoopCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}
