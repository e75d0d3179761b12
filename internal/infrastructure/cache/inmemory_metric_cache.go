package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finwell/engine/internal/domain/metrics"
	"go.uber.org/zap"
)

// InMemoryMetricCache implements metrics.MetricCache with a process-local
// TTL table. It is an explicit, injected dependency keyed by
// (customer, metric, data version), never shared implicitly between
// unrelated customers: the data-version component guarantees that a reused
// cache can never serve stale cross-customer or cross-snapshot results.
type InMemoryMetricCache struct {
	entries sync.Map // map[string]*cacheEntry
	config  metrics.CacheConfig
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached snapshot with its expiration time
type cacheEntry struct {
	value     *metrics.FinancialMetrics
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryMetricCacheOption is a functional option for configuring the cache
type InMemoryMetricCacheOption func(*InMemoryMetricCache)

// WithConfig sets the cache configuration
func WithConfig(config metrics.CacheConfig) InMemoryMetricCacheOption {
	return func(c *InMemoryMetricCache) {
		c.config = config
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) InMemoryMetricCacheOption {
	return func(c *InMemoryMetricCache) {
		c.logger = logger
	}
}

// NewInMemoryMetricCache creates a new in-memory metric cache and starts its
// background cleanup goroutine. Call Stop when the cache is no longer
// needed.
func NewInMemoryMetricCache(opts ...InMemoryMetricCacheOption) *InMemoryMetricCache {
	c := &InMemoryMetricCache{
		config: metrics.DefaultCacheConfig(),
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a cached metrics snapshot. A miss or an expired entry
// returns (nil, nil).
func (c *InMemoryMetricCache) Get(ctx context.Context, key metrics.CacheKey) (*metrics.FinancialMetrics, error) {
	cacheKey := key.String()

	if value, ok := c.entries.Load(cacheKey); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("metric cache hit", zap.String("key", cacheKey))
			return entry.value, nil
		}
		c.entries.Delete(cacheKey)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("metric cache miss", zap.String("key", cacheKey))
	return nil, nil
}

// Set stores a metrics snapshot. A zero ttl falls back to the configured
// default.
func (c *InMemoryMetricCache) Set(ctx context.Context, key metrics.CacheKey, value *metrics.FinancialMetrics, ttl time.Duration) error {
	if value == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.TTL
	}

	c.entries.Store(key.String(), &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Stats returns the hit and miss counters.
func (c *InMemoryMetricCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Stop terminates the background cleanup goroutine. Safe to call more than
// once.
func (c *InMemoryMetricCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryMetricCache) cleanupExpired() {
	interval := c.config.CleanupInterval
	if interval <= 0 {
		interval = metrics.DefaultCacheConfig().CleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := 0
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired() {
					c.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				c.logger.Debug("metric cache cleanup", zap.Int("removed", removed))
			}
		case <-c.stopCh:
			return
		}
	}
}
