package cache

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/EthanLe-hub/FounderHubAI/internal/metrics"
	"github.com/EthanLe-hub/FounderHubAI/pkg/logging"
)

// LoggingCache wraps a Cache with logging + metrics.
type LoggingCache struct {
	inner Cache
}

// NewLoggingCache returns a cache that logs and records metrics.
func NewLoggingCache(inner Cache) Cache {
	return &LoggingCache{inner: inner}
}

func (c *LoggingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, ok, err := c.inner.Get(ctx, key)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
		// Prometheus: count cache hits
		metrics.DeckCacheHitsTotal.Inc()
	}

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.String("cache_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs),
	}

	if parts, ok := parseDeckKey(key); ok {
		fields = append(fields,
			zap.String("model_id", parts.modelID),
			zap.String("version_id", parts.versionID),
			zap.String("hash", parts.hash),
		)
	}

	if err != nil {
		logger.Error("deck_cache_get", append(fields, zap.Error(err))...)
	} else {
		logger.Info("deck_cache_get", fields...)
	}

	return value, ok, err
}

func (c *LoggingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := c.inner.Set(ctx, key, value, ttl)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.Float64("latency_ms", latencyMs),
	}

	if parts, ok := parseDeckKey(key); ok {
		fields = append(fields,
			zap.String("model_id", parts.modelID),
			zap.String("version_id", parts.versionID),
			zap.String("hash", parts.hash),
		)
	}

	if err != nil {
		logger.Error("deck_cache_set", append(fields, zap.Error(err))...)
	} else {
		logger.Info("deck_cache_set", fields...)
	}

	return err
}

// --- helpers for parsing DeckCacheKey.String() ---

type deckKeyParts struct {
	modelID   string
	versionID string
	hash      string
}

// Expecting: deck:<MODEL_ID>:<VERSION_ID>:<HASH>
func parseDeckKey(key string) (deckKeyParts, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 || parts[0] != "deck" {
		return deckKeyParts{}, false
	}
	return deckKeyParts{
		modelID:   parts[1],
		versionID: parts[2],
		hash:      parts[3],
	}, true
}
