// Package warming orchestrates event-driven invalidation and proactive
// cache population for predictable hot data.
package warming

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/logging"
	"github.com/finquery/portcache/pkg/store"
)

// Invalidator translates domain events into cache invalidation. A single
// event may span several categories; each pattern is deleted independently
// and the removed counts are summed, so a partial failure still reports
// what was dropped.
type Invalidator struct {
	store *store.Store
	log   zerolog.Logger
}

// NewInvalidator creates an invalidator over a store.
func NewInvalidator(s *store.Store) *Invalidator {
	if s == nil {
		panic("store cannot be nil")
	}
	return &Invalidator{
		store: s,
		log:   logging.NewLogger("invalidator"),
	}
}

// PortfolioChanged drops everything derived from a portfolio: optimization
// results, portfolio metrics and risk metrics. Returns the combined
// removed count.
func (i *Invalidator) PortfolioChanged(ctx context.Context, portfolioID int64) int64 {
	var removed int64
	for _, pattern := range keys.PortfolioPatterns(portfolioID) {
		removed += i.store.DeletePattern(ctx, pattern)
	}
	i.log.Debug().Int64("portfolio_id", portfolioID).Int64("removed", removed).
		Msg("portfolio caches invalidated")
	return removed
}

// SymbolChanged drops the market data for a symbol plus every correlation
// matrix that includes it.
func (i *Invalidator) SymbolChanged(ctx context.Context, symbol string) int64 {
	removed := i.store.DeletePattern(ctx, keys.MarketDataPattern(symbol))
	for _, pattern := range keys.CorrelationPatterns(symbol) {
		removed += i.store.DeletePattern(ctx, pattern)
	}
	i.log.Debug().Str("symbol", symbol).Int64("removed", removed).
		Msg("symbol caches invalidated")
	return removed
}

// Category drops every entry in one category's namespace.
func (i *Invalidator) Category(ctx context.Context, cat keys.Category) int64 {
	return i.store.DeletePattern(ctx, keys.CategoryPattern(cat))
}
