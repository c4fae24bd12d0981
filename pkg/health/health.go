// Package health probes cache connectivity and reports effectiveness
// diagnostics.
package health

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/logging"
	"github.com/finquery/portcache/pkg/store"
)

// probeTTL keeps abandoned probe keys from lingering if the delete leg
// never runs.
const probeTTL = 30 * time.Second

// Result is one health check outcome.
type Result struct {
	Healthy   bool          `json:"healthy"`
	RoundTrip time.Duration `json:"round_trip"`
	Error     string        `json:"error,omitempty"`
	Stats     store.Stats   `json:"stats"`
}

// Checker runs write/read/delete round-trips against the store.
type Checker struct {
	store *store.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewChecker creates a health checker over a store.
func NewChecker(s *store.Store) *Checker {
	if s == nil {
		panic("store cannot be nil")
	}
	return &Checker{
		store: s,
		now:   time.Now,
		log:   logging.NewLogger("health"),
	}
}

// Check writes, reads back and deletes a throwaway key, measuring the
// full round-trip. The store's stats snapshot rides along either way.
func (c *Checker) Check(ctx context.Context) Result {
	key := fmt.Sprintf("%s:health:probe:%d", keys.CategoryAPIResponse, c.now().UnixNano())
	payload := codec.Record{"probe": true}

	start := c.now()
	result := Result{}

	if err := c.store.Set(ctx, key, keys.CategoryAPIResponse, payload, probeTTL); err != nil {
		return c.unhealthy(ctx, result, start, fmt.Sprintf("probe write failed: %v", err))
	}

	value, ok := c.store.Get(ctx, key)
	if !ok {
		return c.unhealthy(ctx, result, start, "probe read missed its own write")
	}
	record, ok := value.(codec.Record)
	if !ok || record["probe"] != true {
		return c.unhealthy(ctx, result, start, "probe read returned a foreign payload")
	}

	if !c.store.Delete(ctx, key) {
		return c.unhealthy(ctx, result, start, "probe delete failed")
	}

	result.Healthy = true
	result.RoundTrip = c.now().Sub(start)
	result.Stats = c.store.Stats(ctx)
	return result
}

func (c *Checker) unhealthy(ctx context.Context, result Result, start time.Time, msg string) Result {
	result.Healthy = false
	result.RoundTrip = c.now().Sub(start)
	result.Error = msg
	result.Stats = c.store.Stats(ctx)
	c.log.Error().Str("error", msg).Dur("duration", result.RoundTrip).Msg("cache health check failed")
	return result
}
