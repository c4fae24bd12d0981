package domain

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/logging"
	"github.com/finquery/portcache/pkg/store"
)

// MarketDataCache caches per-symbol price frames with market-hours-aware
// TTLs and a freshness gate on reads: a frame whose latest observed date
// predates the acceptable date presents as a miss so the caller refetches.
type MarketDataCache struct {
	store *store.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewMarketDataCache creates a market data cache over a store.
func NewMarketDataCache(s *store.Store) *MarketDataCache {
	if s == nil {
		panic("store cannot be nil")
	}
	return &MarketDataCache{
		store: s,
		now:   time.Now,
		log:   logging.NewLogger("marketdata-cache"),
	}
}

// Get returns the cached frame for a symbol/period, or a miss when the
// entry is absent, undecodable, or no longer fresh.
func (c *MarketDataCache) Get(ctx context.Context, symbol, period string) (*codec.Table, bool) {
	key := keys.MarketData(symbol, period)

	value, ok := c.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	table, ok := value.(*codec.Table)
	if !ok {
		c.log.Warn().Str("key", key).Msgf("unexpected payload type %T, serving miss", value)
		return nil, false
	}

	if !isFresh(table, c.now()) {
		c.log.Debug().Str("key", key).Msg("cached frame stale, serving miss")
		return nil, false
	}
	return table, true
}

// Put caches a frame with the market-hours TTL: shorter during trading
// hours, longer otherwise.
func (c *MarketDataCache) Put(ctx context.Context, symbol, period string, data *codec.Table) error {
	key := keys.MarketData(symbol, period)
	return c.store.Set(ctx, key, keys.CategoryMarketData, data, marketDataTTL(c.now()))
}

// InvalidateSymbol drops every cached period for a symbol and returns the
// removed count.
func (c *MarketDataCache) InvalidateSymbol(ctx context.Context, symbol string) int64 {
	return c.store.DeletePattern(ctx, keys.MarketDataPattern(symbol))
}
