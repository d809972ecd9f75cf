// Package cache keeps denormalized ticket views in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/observability"
)

const (
	keyPrefix     = "ticket_views:"
	generationKey = keyPrefix + "gen"
)

// AllKey is the cache key of the unscoped view list in generation gen.
func AllKey(gen int64) string {
	return fmt.Sprintf("%sg%d:all", keyPrefix, gen)
}

// UserKey is the cache key of the view list scoped to one user in generation
// gen.
func UserKey(gen int64, appUserID string) string {
	return fmt.Sprintf("%sg%d:user:%s", keyPrefix, gen, appUserID)
}

// RedisViewCache stores view lists as JSON strings.
type RedisViewCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *observability.Metrics
}

// NewRedisViewCache builds the cache. A zero ttl stores entries without expiry.
func NewRedisViewCache(client *redis.Client, ttl time.Duration, metrics *observability.Metrics) *RedisViewCache {
	return &RedisViewCache{client: client, ttl: ttl, metrics: metrics}
}

// Get returns the cached views for key; ok is false on a miss.
func (c *RedisViewCache) Get(ctx context.Context, key string) ([]domain.TicketView, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.RecordCacheLookup(false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	views := []domain.TicketView{}
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, false, fmt.Errorf("decode cached views %s: %w", key, err)
	}
	c.metrics.RecordCacheLookup(true)
	return views, true, nil
}

// Set stores views under key.
func (c *RedisViewCache) Set(ctx context.Context, key string, views []domain.TicketView) error {
	data, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Generation returns the current cache generation. Keys must be built from a
// generation read before the views are loaded, so a write racing with the
// load leaves its result under a retired key.
func (c *RedisViewCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// InvalidateAll retires every cached view list by bumping the generation,
// then removes entries of older generations.
func (c *RedisViewCache) InvalidateAll(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return err
	}
	current := fmt.Sprintf("%sg%d:", keyPrefix, gen)

	var stale []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"g*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == generationKey || strings.HasPrefix(key, current) {
			continue
		}
		stale = append(stale, key)
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	return c.client.Del(ctx, stale...).Err()
}
