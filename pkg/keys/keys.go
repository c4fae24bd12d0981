// Package keys builds deterministic, collision-resistant cache keys.
//
// Keys are colon-joined, namespaced by category, and never embed free-form
// parameter mappings verbatim: parameter sets are reduced to a 16-hex
// digest (see Digest) so key length stays bounded and enumeration patterns
// stay clean. Builders are pure functions with no I/O.
package keys

import (
	"fmt"
	"sort"
	"strings"
)

// Category classifies cached data and selects the key namespace and the
// default TTL (see store.TTLPolicy).
type Category string

const (
	CategoryMarketData       Category = "market"
	CategoryOptimization     Category = "optimization"
	CategoryPortfolioMetrics Category = "metrics"
	CategoryRiskMetrics      Category = "risk"
	CategoryCorrelation      Category = "correlation"
	CategorySession          Category = "session"
	CategoryAPIResponse      Category = "api"
)

// Categories lists every known category.
var Categories = []Category{
	CategoryMarketData,
	CategoryOptimization,
	CategoryPortfolioMetrics,
	CategoryRiskMetrics,
	CategoryCorrelation,
	CategorySession,
	CategoryAPIResponse,
}

// MarketData builds the key for a symbol/period price frame.
// Format: market:symbol:AAPL:period:1y
func MarketData(symbol, period string) string {
	return fmt.Sprintf("%s:symbol:%s:period:%s",
		CategoryMarketData, canonicalSymbol(symbol), strings.TrimSpace(period))
}

// Optimization builds the key for an optimization result. The parameter
// mapping is digested, so two requests are cache-equivalent iff portfolio,
// method and every parameter match exactly.
// Format: optimization:portfolio:42:method:max_sharpe:hash:<16-hex>
func Optimization(portfolioID int64, method string, params map[string]any) string {
	return fmt.Sprintf("%s:portfolio:%d:method:%s:hash:%s",
		CategoryOptimization, portfolioID, strings.TrimSpace(method), Digest(params))
}

// PortfolioMetrics builds the key for cached portfolio-level metrics.
func PortfolioMetrics(portfolioID int64) string {
	return fmt.Sprintf("%s:portfolio:%d", CategoryPortfolioMetrics, portfolioID)
}

// RiskMetrics builds the key for cached risk metrics.
func RiskMetrics(portfolioID int64) string {
	return fmt.Sprintf("%s:portfolio:%d", CategoryRiskMetrics, portfolioID)
}

// Correlation builds the key for a correlation matrix over a symbol set.
// Symbols are canonicalized and sorted so order-invariant requests collide.
// Format: correlation:symbols:AAPL,MSFT:period:1y
func Correlation(symbols []string, period string) string {
	canon := make([]string, 0, len(symbols))
	for _, s := range symbols {
		canon = append(canon, canonicalSymbol(s))
	}
	sort.Strings(canon)
	return fmt.Sprintf("%s:symbols:%s:period:%s",
		CategoryCorrelation, strings.Join(canon, ","), strings.TrimSpace(period))
}

// Session builds the key for a user session.
func Session(userID string) string {
	return fmt.Sprintf("%s:user:%s", CategorySession, strings.TrimSpace(userID))
}

// APIResponse builds the key for a cached upstream API response.
// Format: api:quotes/latest:hash:<16-hex>
func APIResponse(endpoint string, params map[string]any) string {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	return fmt.Sprintf("%s:%s:hash:%s", CategoryAPIResponse, endpoint, Digest(params))
}

// MarketDataPattern matches every cached period for a symbol.
func MarketDataPattern(symbol string) string {
	return fmt.Sprintf("%s:symbol:%s:*", CategoryMarketData, canonicalSymbol(symbol))
}

// OptimizationPattern matches every optimization result for a portfolio.
func OptimizationPattern(portfolioID int64) string {
	return fmt.Sprintf("%s:portfolio:%d:*", CategoryOptimization, portfolioID)
}

// CorrelationPatterns returns the patterns that together match every
// correlation matrix containing a symbol. The symbol list is comma-joined
// and colon-bounded, so four patterns anchored on those delimiters cover
// the sole/first/middle/last positions without also matching tickers that
// merely contain the symbol as a substring.
func CorrelationPatterns(symbol string) []string {
	sym := canonicalSymbol(symbol)
	prefix := fmt.Sprintf("%s:symbols:", CategoryCorrelation)
	return []string{
		prefix + sym + ":*",
		prefix + sym + ",*",
		prefix + "*," + sym + ",*",
		prefix + "*," + sym + ":*",
	}
}

// CategoryPattern matches every key in a category's namespace.
func CategoryPattern(cat Category) string {
	return string(cat) + ":*"
}

// PortfolioPatterns returns the patterns a "portfolio changed" event must
// drop: optimization results plus portfolio and risk metrics. Metric keys
// carry no suffix, so their exact keys double as patterns.
func PortfolioPatterns(portfolioID int64) []string {
	return []string{
		OptimizationPattern(portfolioID),
		PortfolioMetrics(portfolioID),
		RiskMetrics(portfolioID),
	}
}

// canonicalSymbol normalizes a ticker symbol to its canonical form.
func canonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
