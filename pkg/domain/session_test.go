package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquery/portcache/internal/testutil"
	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/store"
)

func setupSessionCache(t *testing.T) (*SessionCache, *store.Store) {
	t.Helper()
	client, _ := testutil.NewRedis(t)
	s := store.New(client, store.Config{})
	return NewSessionCache(s), s
}

func TestSessionCache_CreateAndGet(t *testing.T) {
	c, s := setupSessionCache(t)
	ctx := context.Background()

	data := codec.Record{"user_id": "u-17", "roles": []any{"viewer", "editor"}}
	require.NoError(t, c.CreateOrReplace(ctx, "u-17", data, 0))

	got, ok := c.Get(ctx, "u-17")
	require.True(t, ok)
	assert.Equal(t, data, got)

	// Default TTL comes from the session category.
	ttl, state := s.TTLOf(ctx, keys.Session("u-17"))
	require.Equal(t, store.TTLSet, state)
	assert.InDelta(t, (24 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestSessionCache_ReplaceResetsValueAndTTL(t *testing.T) {
	c, s := setupSessionCache(t)
	ctx := context.Background()

	require.NoError(t, c.CreateOrReplace(ctx, "u-17", codec.Record{"v": 1.0}, time.Hour))
	require.NoError(t, c.CreateOrReplace(ctx, "u-17", codec.Record{"v": 2.0}, 2*time.Hour))

	got, ok := c.Get(ctx, "u-17")
	require.True(t, ok)
	assert.Equal(t, 2.0, got["v"])

	ttl, _ := s.TTLOf(ctx, keys.Session("u-17"))
	assert.InDelta(t, (2 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestSessionCache_Extend(t *testing.T) {
	c, s := setupSessionCache(t)
	ctx := context.Background()

	require.NoError(t, c.CreateOrReplace(ctx, "u-17", codec.Record{"v": 1.0}, time.Hour))
	require.True(t, c.Extend(ctx, "u-17", 30*time.Minute))

	ttl, _ := s.TTLOf(ctx, keys.Session("u-17"))
	assert.Greater(t, ttl, 85*time.Minute)

	assert.False(t, c.Extend(ctx, "u-absent", time.Minute),
		"extending a missing session is a clean no-op failure")
}

func TestSessionCache_Invalidate(t *testing.T) {
	c, _ := setupSessionCache(t)
	ctx := context.Background()

	require.NoError(t, c.CreateOrReplace(ctx, "u-17", codec.Record{"v": 1.0}, 0))
	assert.True(t, c.Invalidate(ctx, "u-17"))

	_, ok := c.Get(ctx, "u-17")
	assert.False(t, ok)
	assert.False(t, c.Invalidate(ctx, "u-17"), "second invalidate finds nothing")
}
