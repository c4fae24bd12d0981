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

// SessionCache caches per-user session state. Sessions are the only
// category with sliding expiry: Extend pushes the TTL out without
// rewriting the payload.
type SessionCache struct {
	store *store.Store
	log   zerolog.Logger
}

// NewSessionCache creates a session cache over a store.
func NewSessionCache(s *store.Store) *SessionCache {
	if s == nil {
		panic("store cannot be nil")
	}
	return &SessionCache{
		store: s,
		log:   logging.NewLogger("session-cache"),
	}
}

// Get returns the session state for a user.
func (c *SessionCache) Get(ctx context.Context, userID string) (codec.Record, bool) {
	key := keys.Session(userID)

	value, ok := c.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	session, ok := value.(codec.Record)
	if !ok {
		c.log.Warn().Str("key", key).Msgf("unexpected payload type %T, serving miss", value)
		return nil, false
	}
	return session, true
}

// CreateOrReplace writes a session, resetting value and TTL together.
// Pass ttl 0 for the session category default.
func (c *SessionCache) CreateOrReplace(ctx context.Context, userID string, data codec.Record, ttl time.Duration) error {
	return c.store.Set(ctx, keys.Session(userID), keys.CategorySession, data, ttl)
}

// Extend slides the session expiry out by extra. Returns false (clean
// no-op) when the session is missing or has no TTL.
func (c *SessionCache) Extend(ctx context.Context, userID string, extra time.Duration) bool {
	return c.store.ExtendTTL(ctx, keys.Session(userID), extra)
}

// Invalidate removes a user's session.
func (c *SessionCache) Invalidate(ctx context.Context, userID string) bool {
	return c.store.Delete(ctx, keys.Session(userID))
}
