package store

import (
	"time"

	"github.com/finquery/portcache/pkg/keys"
)

// NoExpiry requests a write without expiration. Only explicit: no category
// defaults to it.
const NoExpiry = time.Duration(-1)

// fallbackTTL covers writes in categories the policy does not know.
const fallbackTTL = 5 * time.Minute

// TTLPolicy maps each category to its default TTL. An explicit TTL passed
// at write time overrides the default for that single write only.
type TTLPolicy map[keys.Category]time.Duration

// DefaultPolicy returns the stock per-category defaults.
func DefaultPolicy() TTLPolicy {
	return TTLPolicy{
		keys.CategoryMarketData:       15 * time.Minute,
		keys.CategoryOptimization:     time.Hour,
		keys.CategoryPortfolioMetrics: 30 * time.Minute,
		keys.CategoryRiskMetrics:      30 * time.Minute,
		keys.CategoryCorrelation:      time.Hour,
		keys.CategorySession:          24 * time.Hour,
		keys.CategoryAPIResponse:      5 * time.Minute,
	}
}

// TTLFor returns the default TTL for a category.
func (p TTLPolicy) TTLFor(cat keys.Category) time.Duration {
	if ttl, ok := p[cat]; ok {
		return ttl
	}
	return fallbackTTL
}

// EffectiveTTL resolves the TTL for a single write: the override when one
// is given (NoExpiry included), the category default otherwise.
func (p TTLPolicy) EffectiveTTL(cat keys.Category, override time.Duration) time.Duration {
	if override == NoExpiry {
		return 0 // redis: zero expiration means persist
	}
	if override > 0 {
		return override
	}
	return p.TTLFor(cat)
}
