package redis_a_test

import (
	"context"
	"errors"
	"io"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/frontdesk-be/internal/adapters/redis_adapter"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

type listing struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (ports.CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return redis_a.NewCache(client, 5*time.Minute, logger), mr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	want := []listing{{ID: 1, Name: "Pod1"}, {ID: 2, Name: "Pod2"}}
	require.NoError(t, cache.SetWithTTL(ctx, "frontdesk:devices", want, time.Minute))

	var got []listing
	require.NoError(t, cache.Get(ctx, "frontdesk:devices", &got))
	assert.Equal(t, want, got)
}

func TestCache_ZeroTTLUsesDefault(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "k", "v", 0))
	assert.Equal(t, 5*time.Minute, mr.TTL("k"))
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "ttl:test", "value", 100*time.Millisecond))

	var result string
	require.NoError(t, cache.Get(ctx, "ttl:test", &result))
	assert.Equal(t, "value", result)

	mr.FastForward(200 * time.Millisecond)

	assert.ErrorIs(t, cache.Get(ctx, "ttl:test", &result), redis_a.ErrCacheMiss)
}

func TestCache_DeleteAndPattern(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	for _, key := range []string{"frontdesk:low_stock:2", "frontdesk:low_stock:5", "frontdesk:sales"} {
		require.NoError(t, cache.SetWithTTL(ctx, key, 1, time.Minute))
	}

	require.NoError(t, cache.DeletePattern(ctx, "frontdesk:low_stock:*"))
	assert.False(t, mr.Exists("frontdesk:low_stock:2"))
	assert.False(t, mr.Exists("frontdesk:low_stock:5"))
	assert.True(t, mr.Exists("frontdesk:sales"))

	require.NoError(t, cache.Delete(ctx, "frontdesk:sales", "absent"))
	assert.False(t, mr.Exists("frontdesk:sales"))

	assert.NoError(t, cache.Delete(ctx))
	assert.NoError(t, cache.DeletePattern(ctx, "nothing:*"))
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []listing{{ID: 7, Name: "Alice"}}, nil
	}

	var first []listing
	require.NoError(t, cache.GetOrSet(ctx, "frontdesk:customers", &first, fetch, time.Minute))
	var second []listing
	require.NoError(t, cache.GetOrSet(ctx, "frontdesk:customers", &second, fetch, time.Minute))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "Alice", second[0].Name)
}

func TestCache_GetOrSet_FetchError(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	boom := errors.New("store down")
	var dest []listing
	err := cache.GetOrSet(ctx, "k", &dest, func() (interface{}, error) { return nil, boom }, time.Minute)

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestCache_GetOrSet_RedisDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	var dest []listing
	err := cache.GetOrSet(ctx, "k", &dest, func() (interface{}, error) {
		return []listing{{ID: 1, Name: "Pod1"}}, nil
	}, time.Minute)

	require.NoError(t, err)
	assert.Equal(t, []listing{{ID: 1, Name: "Pod1"}}, dest)
	assert.Error(t, cache.Ping(ctx))
}

func TestCache_GetOrSet_ConcurrentMissesShareFetch(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	var fetches atomic.Int32
	fetch := func() (interface{}, error) {
		fetches.Add(1)
		time.Sleep(100 * time.Millisecond)
		return []listing{{ID: 1, Name: "Pod1"}}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got []listing
			assert.NoError(t, cache.GetOrSet(ctx, "frontdesk:devices", &got, fetch, time.Minute))
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, fetches.Load())
}

func TestCache_DeletePatternAcrossScanPages(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	for i := 0; i < 250; i++ {
		require.NoError(t, mr.Set(fmt.Sprintf("frontdesk:low_stock:%d", i), "[]"))
	}
	require.NoError(t, mr.Set("frontdesk:devices", "[]"))

	require.NoError(t, cache.DeletePattern(ctx, "frontdesk:low_stock:*"))
	assert.Equal(t, []string{"frontdesk:devices"}, mr.Keys())
}

func TestCache_SetNX(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	ok, err := cache.SetNX(ctx, "frontdesk:alert:Pod1", true, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.SetNX(ctx, "frontdesk:alert:Pod1", true, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "frontdesk:low_stock:2", redis_a.BuildKey("low_stock", "2"))
	assert.Equal(t, "frontdesk:devices", redis_a.BuildKey("devices"))
}
