package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petpal/petpal/internal/model"
)

const usersListKey = "petpal:users:all"

// DefaultUsersTTL is the TTL for the cached users list.
const DefaultUsersTTL = 5 * time.Minute

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetUsers returns the cached users list.
// Returns ErrCacheMiss if nothing is cached.
func (c *Cache) GetUsers(ctx context.Context) ([]*model.User, error) {
	raw, err := c.client.Get(ctx, usersListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var users []*model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		// A corrupt entry is as good as none.
		c.client.Del(ctx, usersListKey)
		return nil, ErrCacheMiss
	}

	return users, nil
}

// SetUsers stores the users list. A non-positive ttl uses DefaultUsersTTL.
func (c *Cache) SetUsers(ctx context.Context, users []*model.User, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultUsersTTL
	}

	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	if err := c.client.Set(ctx, usersListKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache users: %w", err)
	}

	return nil
}

// InvalidateUsers drops the cached users list.
func (c *Cache) InvalidateUsers(ctx context.Context) error {
	if err := c.client.Del(ctx, usersListKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate users cache: %w", err)
	}
	return nil
}
