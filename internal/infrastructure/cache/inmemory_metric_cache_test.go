package cache

import (
	"context"
	"testing"
	"time"

	"github.com/finwell/engine/internal/domain/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() metrics.CacheKey {
	return metrics.CacheKey{
		CustomerID:  uuid.New(),
		Metric:      metrics.MetricFinancialSnapshot,
		DataVersion: "00000000deadbeef",
	}
}

func TestInMemoryMetricCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		defer c.Stop()

		got, err := c.Get(ctx, testKey())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get returns the same snapshot", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		defer c.Stop()

		key := testKey()
		value := &metrics.FinancialMetrics{CustomerID: key.CustomerID, DataVersion: key.DataVersion}
		require.NoError(t, c.Set(ctx, key, value, time.Minute))

		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Same(t, value, got)
	})

	t.Run("expired entries are treated as absent", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		defer c.Stop()

		key := testKey()
		require.NoError(t, c.Set(ctx, key, &metrics.FinancialMetrics{}, 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("different data versions never collide", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		defer c.Stop()

		key := testKey()
		stale := key
		stale.DataVersion = "0000000000000001"
		require.NoError(t, c.Set(ctx, stale, &metrics.FinancialMetrics{}, time.Minute))

		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("different customers never collide", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		defer c.Stop()

		key := testKey()
		require.NoError(t, c.Set(ctx, key, &metrics.FinancialMetrics{}, time.Minute))

		other := key
		other.CustomerID = uuid.New()
		got, err := c.Get(ctx, other)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("zero ttl falls back to the configured default", func(t *testing.T) {
		c := NewInMemoryMetricCache(WithConfig(metrics.CacheConfig{
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		}))
		defer c.Stop()

		key := testKey()
		require.NoError(t, c.Set(ctx, key, &metrics.FinancialMetrics{}, 0))

		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("stats count hits and misses", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		defer c.Stop()

		key := testKey()
		_, _ = c.Get(ctx, key)
		require.NoError(t, c.Set(ctx, key, &metrics.FinancialMetrics{}, time.Minute))
		_, _ = c.Get(ctx, key)
		_, _ = c.Get(ctx, key)

		hits, misses := c.Stats()
		assert.Equal(t, int64(2), hits)
		assert.Equal(t, int64(1), misses)
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		c := NewInMemoryMetricCache(WithConfig(metrics.CacheConfig{
			TTL:             time.Minute,
			CleanupInterval: 10 * time.Millisecond,
		}))
		defer c.Stop()

		key := testKey()
		require.NoError(t, c.Set(ctx, key, &metrics.FinancialMetrics{}, time.Millisecond))

		assert.Eventually(t, func() bool {
			_, ok := c.entries.Load(key.String())
			return !ok
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		c := NewInMemoryMetricCache()
		c.Stop()
		c.Stop()
	})
}
