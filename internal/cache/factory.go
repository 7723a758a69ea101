package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Backend string
	TTL     time.Duration
	Prefix  string
}

// New selects the cache backend by name. Unrecognized names fall back to
// the in-process memory cache.
func New(cfg Config, redisClient *redis.Client, memcacheClient *memcache.Client) Cache {
	switch cfg.Backend {
	case "redis":
		return NewRedisCache(redisClient, RedisConfig{
			Prefix: cfg.Prefix,
		})
	case "memcache":
		return NewMemcacheCache(memcacheClient, MemcacheConfig{
			Prefix: cfg.Prefix,
		})
	default:
		return NewMemoryCache(cfg.TTL)
	}
}
