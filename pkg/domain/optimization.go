package domain

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/logging"
	"github.com/finquery/portcache/pkg/store"
)

// OptimizationCache caches optimization results keyed by portfolio,
// method and a digest of the parameter mapping: two requests are
// cache-equivalent iff all three match exactly.
type OptimizationCache struct {
	store *store.Store
	log   zerolog.Logger
}

// NewOptimizationCache creates an optimization result cache over a store.
func NewOptimizationCache(s *store.Store) *OptimizationCache {
	if s == nil {
		panic("store cannot be nil")
	}
	return &OptimizationCache{
		store: s,
		log:   logging.NewLogger("optimization-cache"),
	}
}

// Get returns the cached result for an exact portfolio/method/parameters
// combination.
func (c *OptimizationCache) Get(ctx context.Context, portfolioID int64, method string, params map[string]any) (codec.Record, bool) {
	key := keys.Optimization(portfolioID, method, params)

	value, ok := c.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	result, ok := value.(codec.Record)
	if !ok {
		c.log.Warn().Str("key", key).Msgf("unexpected payload type %T, serving miss", value)
		return nil, false
	}
	return result, true
}

// Put caches an optimization result with the category default TTL.
func (c *OptimizationCache) Put(ctx context.Context, portfolioID int64, method string, params map[string]any, result codec.Record) error {
	key := keys.Optimization(portfolioID, method, params)
	return c.store.Set(ctx, key, keys.CategoryOptimization, result, 0)
}

// InvalidatePortfolio drops every cached optimization result for a
// portfolio and returns the removed count. Cross-category invalidation on
// portfolio mutations lives in the warming orchestrator.
func (c *OptimizationCache) InvalidatePortfolio(ctx context.Context, portfolioID int64) int64 {
	return c.store.DeletePattern(ctx, keys.OptimizationPattern(portfolioID))
}
