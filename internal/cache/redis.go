// Package cache keeps the API's users list in Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The cache holds one key read on every GET /users, so a handful of
// connections is enough.
const (
	poolSize     = 4
	minIdleConns = 1
	poolTimeout  = 2 * time.Second
	idleTimeout  = 5 * time.Minute
)

// Cache wraps the Redis client used for the users list.
type Cache struct {
	client *redis.Client
}

// New dials redisURL and pings it. Errors name the address, not the URL;
// callers still pass them through logging.SanitizeError.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opt.PoolSize = poolSize
	opt.MinIdleConns = minIdleConns
	opt.PoolTimeout = poolTimeout
	opt.ConnMaxIdleTime = idleTimeout

	c := NewWithClient(redis.NewClient(opt))
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", opt.Addr, err)
	}
	return c, nil
}

// NewWithClient wraps an existing client, as tests do with miniredis.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Ping backs the readiness check.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
