package warming

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquery/portcache/internal/testutil"
	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/store"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	client, _ := testutil.NewRedis(t)
	return store.New(client, store.Config{})
}

func TestInvalidator_PortfolioChanged(t *testing.T) {
	s := setupStore(t)
	inv := NewInvalidator(s)
	ctx := context.Background()

	optKey := keys.Optimization(42, "max_sharpe", map[string]any{"risk_free_rate": 0.02})
	seed := map[string]keys.Category{
		optKey:                    keys.CategoryOptimization,
		keys.PortfolioMetrics(42): keys.CategoryPortfolioMetrics,
		keys.RiskMetrics(42):      keys.CategoryRiskMetrics,
		keys.PortfolioMetrics(7):  keys.CategoryPortfolioMetrics,
	}
	for key, cat := range seed {
		require.NoError(t, s.Set(ctx, key, cat, codec.Record{"v": 1.0}, 0))
	}

	removed := inv.PortfolioChanged(ctx, 42)
	assert.Equal(t, int64(3), removed, "optimization + metrics + risk entries")

	assert.False(t, s.Exists(ctx, optKey))
	assert.False(t, s.Exists(ctx, keys.PortfolioMetrics(42)))
	assert.False(t, s.Exists(ctx, keys.RiskMetrics(42)))
	assert.True(t, s.Exists(ctx, keys.PortfolioMetrics(7)), "other portfolios untouched")
}

func TestInvalidator_PortfolioChanged_NothingCached(t *testing.T) {
	inv := NewInvalidator(setupStore(t))

	assert.Equal(t, int64(0), inv.PortfolioChanged(context.Background(), 999))
}

func TestInvalidator_SymbolChanged(t *testing.T) {
	s := setupStore(t)
	inv := NewInvalidator(s)
	ctx := context.Background()

	frame := &codec.Table{Columns: []string{"close"}, Index: []string{"2026-08-21"}, Cells: [][]float64{{227.76}}}
	require.NoError(t, s.Set(ctx, keys.MarketData("AAPL", "1y"), keys.CategoryMarketData, frame, 0))
	require.NoError(t, s.Set(ctx, keys.MarketData("AAPL", "5d"), keys.CategoryMarketData, frame, 0))
	require.NoError(t, s.Set(ctx, keys.Correlation([]string{"AAPL", "MSFT"}, "1y"), keys.CategoryCorrelation, frame, 0))
	require.NoError(t, s.Set(ctx, keys.Correlation([]string{"GOOG", "MSFT"}, "1y"), keys.CategoryCorrelation, frame, 0))
	require.NoError(t, s.Set(ctx, keys.Correlation([]string{"MSFT", "XAAPL"}, "1y"), keys.CategoryCorrelation, frame, 0))

	removed := inv.SymbolChanged(ctx, "AAPL")
	assert.Equal(t, int64(3), removed, "two market entries plus one correlation matrix")

	assert.True(t, s.Exists(ctx, keys.Correlation([]string{"GOOG", "MSFT"}, "1y")),
		"correlations without the symbol untouched")
	assert.True(t, s.Exists(ctx, keys.Correlation([]string{"MSFT", "XAAPL"}, "1y")),
		"a ticker merely containing the symbol must survive")
}

func TestInvalidator_Category(t *testing.T) {
	s := setupStore(t)
	inv := NewInvalidator(s)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, keys.Session("u-1"), keys.CategorySession, codec.Record{"v": 1.0}, 0))
	require.NoError(t, s.Set(ctx, keys.Session("u-2"), keys.CategorySession, codec.Record{"v": 2.0}, 0))
	require.NoError(t, s.Set(ctx, keys.PortfolioMetrics(42), keys.CategoryPortfolioMetrics, codec.Record{"v": 3.0}, 0))

	assert.Equal(t, int64(2), inv.Category(ctx, keys.CategorySession))
	assert.True(t, s.Exists(ctx, keys.PortfolioMetrics(42)))
}
