// Package store is a thin, failure-contained wrapper over the shared
// key-value store. Every operation degrades instead of propagating store
// connectivity errors: a broken cache presents exactly like a cold cache,
// so the layer stays an optional accelerator and never a correctness
// dependency.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/logging"
)

// ErrStoreUnavailable indicates a connectivity or timeout failure against
// the backing store. It is surfaced on writes only; reads fold it into a
// miss.
var ErrStoreUnavailable = errors.New("store unavailable")

// TTLState classifies the expiry state of a key.
type TTLState int

const (
	// TTLSet means the key exists and has a finite TTL.
	TTLSet TTLState = iota

	// TTLNone means the key exists without expiry.
	TTLNone

	// TTLMissing means the key does not exist.
	TTLMissing

	// TTLUnknown means the store could not be queried.
	TTLUnknown
)

const (
	defaultOpTimeout = 2 * time.Second
	defaultScanCount = 100
)

// Config tunes a Store. Zero values select the defaults.
type Config struct {
	// Policy supplies per-category default TTLs.
	Policy TTLPolicy

	// OpTimeout bounds every single store operation (default 2s).
	// Timeouts are treated as store failures, never surfaced raw.
	OpTimeout time.Duration

	// ScanCount is the chunk size for pattern enumeration (default 100).
	ScanCount int64
}

// Store wraps the backing key-value store. Safe for concurrent use; the
// hit/miss counters are atomics and the underlying client pools
// connections itself.
type Store struct {
	rdb       *redis.Client
	policy    TTLPolicy
	opTimeout time.Duration
	scanCount int64
	log       zerolog.Logger
	counters  counters
}

// New creates a Store over an already-connected client. Lifecycle is the
// caller's: construct at startup, Close at teardown.
func New(rdb *redis.Client, cfg Config) *Store {
	if rdb == nil {
		panic("redis client cannot be nil")
	}
	if cfg.Policy == nil {
		cfg.Policy = DefaultPolicy()
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = defaultOpTimeout
	}
	if cfg.ScanCount <= 0 {
		cfg.ScanCount = defaultScanCount
	}
	return &Store{
		rdb:       rdb,
		policy:    cfg.Policy,
		opTimeout: cfg.OpTimeout,
		scanCount: cfg.ScanCount,
		log:       logging.NewLogger("store"),
	}
}

// Policy returns the store's TTL policy.
func (s *Store) Policy() TTLPolicy {
	return s.policy
}

// Get retrieves and decodes a value. The second return is false on a miss,
// on a decode failure, and on store unavailability: callers treat all
// three as "recompute".
func (s *Store) Get(ctx context.Context, key string) (any, bool) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			s.miss()
			return nil, false
		}
		Errors.WithLabelValues("get").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("store get failed, serving miss")
		s.miss()
		return nil, false
	}

	value, err := codec.Decode(data)
	if err != nil {
		DecodeFailures.Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("cache payload undecodable, serving miss")
		s.miss()
		return nil, false
	}

	s.hit()
	return value, true
}

// Set encodes and writes a value with the resolved TTL. Pass ttl 0 for the
// category default, NoExpiry to persist. A serialization failure aborts
// before anything reaches the store.
func (s *Store) Set(ctx context.Context, key string, cat keys.Category, value any, ttl time.Duration) error {
	data, err := codec.Encode(value)
	if err != nil {
		Errors.WithLabelValues("set").Inc()
		return fmt.Errorf("encode %s: %w", key, err)
	}

	effective := s.policy.EffectiveTTL(cat, ttl)

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.rdb.Set(ctx, key, data, effective).Err(); err != nil {
		Errors.WithLabelValues("set").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("store set failed")
		return fmt.Errorf("set %s: %w: %v", key, ErrStoreUnavailable, err)
	}

	s.log.Debug().Str("key", key).Str("category", string(cat)).Dur("ttl", effective).Msg("cached")
	return nil
}

// Delete removes a key. Returns whether a key was actually removed; store
// failures report false.
func (s *Store) Delete(ctx context.Context, key string) bool {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		Errors.WithLabelValues("delete").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("store delete failed")
		return false
	}
	KeysRemoved.Add(float64(n))
	return n > 0
}

// DeletePattern removes every key matching a glob pattern and returns the
// removed count. Enumeration is chunked (SCAN, never KEYS) so a large
// invalidation does not starve concurrent readers. Zero matches is fine.
func (s *Store) DeletePattern(ctx context.Context, pattern string) int64 {
	var removed int64
	var cursor uint64

	for {
		batch, next, err := s.scanChunk(ctx, cursor, pattern)
		if err != nil {
			Errors.WithLabelValues("delete_pattern").Inc()
			s.log.Warn().Err(err).Str("pattern", pattern).
				Int64("removed", removed).Msg("pattern scan failed, partial invalidation")
			return removed
		}

		if len(batch) > 0 {
			n, err := s.deleteChunk(ctx, batch)
			removed += n
			if err != nil {
				Errors.WithLabelValues("delete_pattern").Inc()
				s.log.Warn().Err(err).Str("pattern", pattern).
					Int64("removed", removed).Msg("pattern delete failed, partial invalidation")
				return removed
			}
		}

		if next == 0 {
			break
		}
		cursor = next
	}

	if removed > 0 {
		s.log.Debug().Str("pattern", pattern).Int64("removed", removed).Msg("pattern invalidated")
	}
	return removed
}

func (s *Store) scanChunk(ctx context.Context, cursor uint64, pattern string) ([]string, uint64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.rdb.Scan(ctx, cursor, pattern, s.scanCount).Result()
}

func (s *Store) deleteChunk(ctx context.Context, batch []string) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	n, err := s.rdb.Del(ctx, batch...).Result()
	KeysRemoved.Add(float64(n))
	return n, err
}

// Exists reports whether a key is present. Store failures report false.
func (s *Store) Exists(ctx context.Context, key string) bool {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		Errors.WithLabelValues("get").Inc()
		return false
	}
	return n > 0
}

// TTLOf reports the remaining TTL of a key and its expiry state.
func (s *Store) TTLOf(ctx context.Context, key string) (time.Duration, TTLState) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ttl, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		Errors.WithLabelValues("ttl").Inc()
		return 0, TTLUnknown
	}
	// go-redis passes the -2 (missing) and -1 (no expiry) replies through
	// unscaled.
	switch ttl {
	case -2:
		return 0, TTLMissing
	case -1:
		return 0, TTLNone
	default:
		return ttl, TTLSet
	}
}

// ExtendTTL adds extra time to a key's existing TTL. Returns false (a
// clean no-op) when the key is missing, has no expiry, or the store is
// unavailable.
func (s *Store) ExtendTTL(ctx context.Context, key string, extra time.Duration) bool {
	current, state := s.TTLOf(ctx, key)
	if state != TTLSet {
		return false
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	ok, err := s.rdb.Expire(ctx, key, current+extra).Result()
	if err != nil {
		Errors.WithLabelValues("extend_ttl").Inc()
		s.log.Warn().Err(err).Str("key", key).Msg("store expire failed")
		return false
	}
	return ok
}

// Flush deletes every entry, or only those matching a pattern when one is
// given.
func (s *Store) Flush(ctx context.Context, pattern string) error {
	if pattern != "" {
		s.DeletePattern(ctx, pattern)
		return nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.rdb.FlushDB(ctx).Err(); err != nil {
		Errors.WithLabelValues("flush").Inc()
		return fmt.Errorf("flush: %w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping probes store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping: %w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *Store) hit() {
	s.counters.hits.Add(1)
	Hits.Inc()
}

func (s *Store) miss() {
	s.counters.misses.Add(1)
	Misses.Inc()
}
