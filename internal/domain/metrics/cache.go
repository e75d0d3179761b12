package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MetricFinancialSnapshot is the metric name under which the full
// FinancialMetrics snapshot is cached.
const MetricFinancialSnapshot = "financial_metrics"

// CacheKey identifies one cached computation. DataVersion is the snapshot
// fingerprint, so stale entries can never be served across data changes and
// entries for different customers can never collide.
type CacheKey struct {
	CustomerID  uuid.UUID
	Metric      string
	DataVersion string
}

// String renders the key in its canonical form.
func (k CacheKey) String() string {
	return k.CustomerID.String() + ":" + k.Metric + ":" + k.DataVersion
}

// MetricCache is the injected memoization dependency. Implementations must
// treat entries older than their TTL as absent. Get returns (nil, nil) on a
// miss.
type MetricCache interface {
	Get(ctx context.Context, key CacheKey) (*FinancialMetrics, error)
	Set(ctx context.Context, key CacheKey, value *FinancialMetrics, ttl time.Duration) error
}

// CacheConfig holds metric cache tuning.
type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// DefaultCacheConfig returns the default cache tuning (60s TTL).
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:             60 * time.Second,
		CleanupInterval: 30 * time.Second,
	}
}
