// internal/core/services/cache.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// Listing cache keys
const (
	KeyCustomers  = "frontdesk:customers"
	KeyDevices    = "frontdesk:devices"
	KeyEmployees  = "frontdesk:employees"
	KeyBorrowings = "frontdesk:borrowings"
	KeySales      = "frontdesk:sales"
	KeyInventory  = "frontdesk:inventory"
	KeyDashboard  = "frontdesk:dashboard"

	lowStockPattern = "frontdesk:low_stock:*"
	alertKeyPrefix  = "frontdesk:alert:"
)

// LowStockKey is the cache key of the low-stock listing for threshold
func LowStockKey(threshold int) string {
	return fmt.Sprintf("frontdesk:low_stock:%d", threshold)
}

// ListingCache wraps the cache port for the read-all listings. A nil
// *ListingCache or a nil port disables caching.
type ListingCache struct {
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewListingCache creates a listing cache
func NewListingCache(cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *ListingCache {
	return &ListingCache{
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "listing_cache")),
	}
}

func (c *ListingCache) enabled() bool {
	return c != nil && c.cache != nil
}

// invalidate drops keys after a write. Failures only leave stale entries until the TTL expires.
func (c *ListingCache) invalidate(ctx context.Context, keys ...string) {
	if !c.enabled() {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate listings", slog.Any("keys", keys), "err", err)
	}
}

func (c *ListingCache) invalidateLowStock(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.cache.DeletePattern(ctx, lowStockPattern); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate low stock listings", "err", err)
	}
}

// claimAlert reports whether no alert for item was sent within window
func (c *ListingCache) claimAlert(ctx context.Context, item string, window time.Duration) bool {
	if !c.enabled() {
		return true
	}
	ok, err := c.cache.SetNX(ctx, alertKeyPrefix+item, time.Now().UTC(), window)
	if err != nil {
		return true
	}
	return ok
}

// cachedList reads a listing through the cache
func cachedList[T any](ctx context.Context, c *ListingCache, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if !c.enabled() {
		return fetch(ctx)
	}

	var out []T
	err := c.cache.GetOrSet(ctx, key, &out, func() (interface{}, error) {
		v, err := fetch(ctx)
		return v, err
	}, c.ttl)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

// cachedValue reads a single value through the cache
func cachedValue[T any](ctx context.Context, c *ListingCache, key string, fetch func(context.Context) (*T, error)) (*T, error) {
	if !c.enabled() {
		return fetch(ctx)
	}

	out := new(T)
	err := c.cache.GetOrSet(ctx, key, out, func() (interface{}, error) {
		v, err := fetch(ctx)
		return v, err
	}, c.ttl)
	if err != nil {
		return nil, err
	}
	return out, nil
}
