package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent, so callers can tell a miss
// apart from a broken Redis connection.
var ErrMiss = errors.New("cache miss")

// Open creates a Redis client from a URL (redis://...). Returns nil
// client for an empty URL so caching stays optional in dev and tests.
func Open(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// Cache is a thin get/set/invalidate wrapper around Redis used for view
// caching. A nil Cache or nil client degrades to a pass-through (every
// Get misses, Set and Invalidate are no-ops).
type Cache struct {
	Rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{Rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.Rdb == nil {
		return nil, ErrMiss
	}
	data, err := c.Rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.Rdb == nil {
		return nil
	}
	return c.Rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.Rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.Rdb.Del(ctx, keys...).Err()
}
