package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheCache implements Cache on top of memcached.
type MemcacheCache struct {
	client *memcache.Client
	prefix string
}

type MemcacheConfig struct {
	Prefix string
}

// NewMemcacheCache creates a memcached-backed cache for the given servers.
func NewMemcacheCache(client *memcache.Client, config MemcacheConfig) *MemcacheCache {
	return &MemcacheCache{
		client: client,
		prefix: config.Prefix,
	}
}

func (c *MemcacheCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// Get retrieves a value from memcached. A cache miss is expected and clean;
// any other client error is returned for the caller to log and treat as a miss.
func (c *MemcacheCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("context error: %w", err)
	}

	item, err := c.client.Get(c.key(key))
	if err == memcache.ErrCacheMiss {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("memcache get failed: %w", err)
	}

	return item.Value, true, nil
}

// Set stores a value with TTL. Memcached expirations are whole seconds;
// sub-second TTLs round up so a short-lived entry still expires.
func (c *MemcacheCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if ttl <= 0 {
		return nil
	}

	seconds := int32(ttl / time.Second)
	if ttl%time.Second != 0 {
		seconds++
	}

	err := c.client.Set(&memcache.Item{
		Key:        c.key(key),
		Value:      value,
		Expiration: seconds, // time in seconds
	})
	if err != nil {
		return fmt.Errorf("memcache set failed: %w", err)
	}

	return nil
}

// Delete removes a key from cache.
func (c *MemcacheCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if err := c.client.Delete(c.key(key)); err != nil && err != memcache.ErrCacheMiss {
		return fmt.Errorf("memcache delete failed: %w", err)
	}
	return nil
}
