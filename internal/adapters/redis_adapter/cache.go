// internal/adapters/redis_adapter/cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// KeyPrefix namespaces every key this service writes
const KeyPrefix = "frontdesk"

const scanBatch = 100

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON encoded listings in Redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	// fills collapses concurrent misses on one key into a single fetch
	fills singleflight.Group
}

var _ ports.CacheRepository = (*Cache)(nil)

// NewCache creates a new cache instance. ttl is used when a caller passes a zero TTL.
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) ports.CacheRepository {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cache")),
	}
}

// SetWithTTL stores a JSON encoded value
func (c *Cache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.effectiveTTL(ttl)).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// Get decodes the value at key into dest, returning ErrCacheMiss when absent
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

// Delete removes keys from cache
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

// DeletePattern unlinks every key matching a glob pattern. Keys are collected
// before anything is removed so the scan cursor never sees a shrinking keyspace.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan error: %w", err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Unlink(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("redis unlink error: %w", err)
		}
	}

	c.logger.DebugContext(ctx, "cache pattern cleared",
		slog.String("pattern", pattern),
		slog.Int("keys", len(keys)))
	return nil
}

// GetOrSet reads key into dest. On a miss it calls fetch and caches the
// result; concurrent misses on the same key share one fetch. A failing Redis
// never fails the read.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{},
	fetch func() (interface{}, error), ttl time.Duration) error {

	err := c.Get(ctx, key, dest)
	if err == nil {
		c.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.WarnContext(ctx, "cache unavailable, reading through", slog.String("key", key), "err", err)
	}

	v, err, shared := c.fills.Do(key, func() (interface{}, error) {
		value, err := fetch()
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		if err := c.client.Set(ctx, key, data, c.effectiveTTL(ttl)).Err(); err != nil {
			c.logger.WarnContext(ctx, "failed to cache value after fetch", slog.String("key", key), "err", err)
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "cache filled", slog.String("key", key), slog.Bool("shared", shared))
	if err := json.Unmarshal(v.([]byte), dest); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}
	return nil
}

// SetNX sets a key only if it doesn't exist
func (c *Cache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("marshal error: %w", err)
	}

	ok, err := c.client.SetNX(ctx, key, data, c.effectiveTTL(ttl)).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx error: %w", err)
	}
	return ok, nil
}

// Ping checks if Redis is accessible
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

func (c *Cache) effectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return c.ttl
	}
	return ttl
}

// BuildKey joins parts under the service prefix
func BuildKey(parts ...string) string {
	return KeyPrefix + ":" + strings.Join(parts, ":")
}
