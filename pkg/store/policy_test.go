package store

import (
	"testing"
	"time"

	"github.com/finquery/portcache/pkg/keys"
)

func TestDefaultPolicy_CoversEveryCategory(t *testing.T) {
	policy := DefaultPolicy()
	for _, cat := range keys.Categories {
		if _, ok := policy[cat]; !ok {
			t.Errorf("category %q has no default TTL", cat)
		}
	}
}

func TestTTLPolicy_EffectiveTTL(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name     string
		category keys.Category
		override time.Duration
		want     time.Duration
	}{
		{
			name:     "zero override uses category default",
			category: keys.CategoryMarketData,
			override: 0,
			want:     15 * time.Minute,
		},
		{
			name:     "explicit override wins",
			category: keys.CategoryMarketData,
			override: 300 * time.Second,
			want:     300 * time.Second,
		},
		{
			name:     "no-expiry sentinel maps to persist",
			category: keys.CategorySession,
			override: NoExpiry,
			want:     0,
		},
		{
			name:     "unknown category falls back",
			category: keys.Category("unknown"),
			override: 0,
			want:     fallbackTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.EffectiveTTL(tt.category, tt.override); got != tt.want {
				t.Errorf("EffectiveTTL() = %v, want %v", got, tt.want)
			}
		})
	}
}
