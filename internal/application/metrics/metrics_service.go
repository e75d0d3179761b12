package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/finwell/engine/internal/domain/ledger"
	"github.com/finwell/engine/internal/domain/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLatencyTarget is the advisory computation budget. Exceeding it
// logs a warning but never fails the request.
const DefaultLatencyTarget = 10 * time.Millisecond

// LedgerProvider supplies the immutable, already-validated record set for a
// customer. Parsing and validating source records is the provider's
// responsibility; the engine does not check referential integrity.
type LedgerProvider interface {
	Snapshot(ctx context.Context, customerID uuid.UUID) (*ledger.Snapshot, error)
}

// MetricsService orchestrates one metrics request: resolve the snapshot,
// consult the injected cache, run the engine on a miss, and time the
// computation. One service instance is safe for concurrent use; each
// request gets its own engine value.
type MetricsService struct {
	provider      LedgerProvider
	cache         metrics.MetricCache
	scorer        metrics.CreditScorer
	logger        *zap.Logger
	clock         func() time.Time
	cacheTTL      time.Duration
	latencyTarget time.Duration
}

// MetricsServiceOption is a functional option for configuring MetricsService
type MetricsServiceOption func(*MetricsService)

// WithCache sets the injected metric cache. Without a cache every request
// recomputes.
func WithCache(cache metrics.MetricCache) MetricsServiceOption {
	return func(s *MetricsService) {
		s.cache = cache
	}
}

// WithCreditScorer replaces the default credit scoring strategy.
func WithCreditScorer(scorer metrics.CreditScorer) MetricsServiceOption {
	return func(s *MetricsService) {
		s.scorer = scorer
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) MetricsServiceOption {
	return func(s *MetricsService) {
		s.logger = logger
	}
}

// WithClock sets the reference clock used for trailing windows.
func WithClock(clock func() time.Time) MetricsServiceOption {
	return func(s *MetricsService) {
		s.clock = clock
	}
}

// WithCacheTTL overrides the default 60s cache entry lifetime.
func WithCacheTTL(ttl time.Duration) MetricsServiceOption {
	return func(s *MetricsService) {
		s.cacheTTL = ttl
	}
}

// WithLatencyTarget overrides the advisory 10ms computation budget.
func WithLatencyTarget(target time.Duration) MetricsServiceOption {
	return func(s *MetricsService) {
		s.latencyTarget = target
	}
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(provider LedgerProvider, opts ...MetricsServiceOption) *MetricsService {
	s := &MetricsService{
		provider:      provider,
		logger:        zap.NewNop(),
		clock:         time.Now,
		cacheTTL:      metrics.DefaultCacheConfig().TTL,
		latencyTarget: DefaultLatencyTarget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetFinancialMetrics returns the metrics snapshot for a customer, from
// cache when a fresh entry exists for the same data version. Two calls
// within the TTL over unchanged data return the identical snapshot.
func (s *MetricsService) GetFinancialMetrics(ctx context.Context, customerID uuid.UUID) (*metrics.FinancialMetrics, error) {
	snap, err := s.provider.Snapshot(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("no ledger snapshot for customer %s", customerID)
	}

	key := metrics.CacheKey{
		CustomerID:  customerID,
		Metric:      metrics.MetricFinancialSnapshot,
		DataVersion: snap.Version,
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("metric cache lookup failed",
				zap.String("customer_id", customerID.String()),
				zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	engineOpts := []metrics.EngineOption{metrics.WithClock(s.clock)}
	if s.scorer != nil {
		engineOpts = append(engineOpts, metrics.WithCreditScorer(s.scorer))
	}

	start := time.Now()
	result := metrics.NewEngine(snap, engineOpts...).Calculate()
	elapsed := time.Since(start)

	if elapsed > s.latencyTarget {
		// Advisory only: a slow computation still returns a correct result.
		s.logger.Warn("metrics computation exceeded latency target",
			zap.String("customer_id", customerID.String()),
			zap.Duration("elapsed", elapsed),
			zap.Duration("target", s.latencyTarget))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.Warn("metric cache store failed",
				zap.String("customer_id", customerID.String()),
				zap.Error(err))
		}
	}

	return result, nil
}
