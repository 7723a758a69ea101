package cache

import (
	"context"
	"fmt"
	"time"
)

// DeckCacheKey identifies one cached generation result.
// Hash is sha256 of the request fields that matter (problem + solution).
type DeckCacheKey struct {
	ModelID   string
	VersionID string
	Hash      string
}

// String converts the structured key into the final string used in Redis/map.
func (k DeckCacheKey) String() string {
	// deck:<MODEL_ID>:<VERSION_ID>:<HASH_HEX>
	return fmt.Sprintf("deck:%s:%s:%s", k.ModelID, k.VersionID, k.Hash)
}

// Cache is the response cache used by the generation handlers.
// Implemented by the memory cache (dev) and the Redis/memcache caches (prod).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
