package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// StatsCache provides short-TTL caching for dashboard statistics payloads.
// The dashboard aggregates several table scans, so repeated polling from the
// UI is served from Redis within the TTL window.
type StatsCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewStatsCache creates a new StatsCache.
func NewStatsCache(redis *RedisClient, ttl time.Duration) *StatsCache {
	return &StatsCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *StatsCache) key(name string) string {
	return fmt.Sprintf("stats:%s", name)
}

// Set serializes v as JSON and stores it under the named stats key.
func (c *StatsCache) Set(ctx context.Context, name string, v interface{}) error {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal stats payload: %w", err)
	}
	return c.redis.Set(ctx, c.key(name), string(jsonData), c.ttl)
}

// Get loads the named stats key into dst. Returns redis.Nil via the underlying
// client when the key is absent or expired.
func (c *StatsCache) Get(ctx context.Context, name string, dst interface{}) error {
	jsonData, err := c.redis.Get(ctx, c.key(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonData), dst); err != nil {
		return fmt.Errorf("failed to unmarshal stats payload: %w", err)
	}
	return nil
}

// Invalidate removes the named stats key, forcing recomputation on next read.
func (c *StatsCache) Invalidate(ctx context.Context, name string) error {
	return c.redis.Delete(ctx, c.key(name))
}
