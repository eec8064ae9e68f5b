package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheNamespace prefixes every cache key.
const DefaultCacheNamespace = "pocketbank:cache:"

// Cache is a byte cache over Redis used for the admin summary.
type Cache struct {
	client    redis.Cmdable
	namespace string
}

func NewCache(client redis.Cmdable) *Cache {
	return &Cache{client: client, namespace: DefaultCacheNamespace}
}

func (c *Cache) key(k string) string {
	return c.namespace + k
}

// Get returns nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	return val, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete is a no-op for absent keys.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}
