package keys

import (
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestDigest_Format(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
	}{
		{name: "nil params", params: nil},
		{name: "empty params", params: map[string]any{}},
		{name: "flat params", params: map[string]any{"risk_free_rate": 0.02}},
		{
			name: "nested params",
			params: map[string]any{
				"constraints": map[string]any{"max_weight": 0.4, "min_weight": 0.0},
				"symbols":     []any{"AAPL", "MSFT"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Digest(tt.params)
			if !hexDigest.MatchString(got) {
				t.Errorf("Digest() = %q, want 16 lowercase hex chars", got)
			}
		})
	}
}

func TestDigest_OrderInvariant(t *testing.T) {
	a := Digest(map[string]any{
		"risk_free_rate": 0.02,
		"target_return":  0.10,
		"constraints":    map[string]any{"max_weight": 0.4, "long_only": true},
	})
	b := Digest(map[string]any{
		"constraints":    map[string]any{"long_only": true, "max_weight": 0.4},
		"target_return":  0.10,
		"risk_free_rate": 0.02,
	})
	if a != b {
		t.Errorf("insertion order changed the digest: %q vs %q", a, b)
	}
}

func TestDigest_Discrimination(t *testing.T) {
	base := Digest(map[string]any{"risk_free_rate": 0.02})

	changed := []map[string]any{
		{"risk_free_rate": 0.03},
		{"risk_free_rate": 0.02, "target_return": 0.10},
		{"riskfree_rate": 0.02},
		{},
	}
	for _, params := range changed {
		if Digest(params) == base {
			t.Errorf("digest collision for %v", params)
		}
	}
}

func TestDigest_SliceOrderSignificant(t *testing.T) {
	// Slices keep caller order: a reordered list is a different request
	// unless the builder sorts it first (see Correlation).
	a := Digest(map[string]any{"symbols": []any{"AAPL", "MSFT"}})
	b := Digest(map[string]any{"symbols": []any{"MSFT", "AAPL"}})
	if a == b {
		t.Error("slice order should be significant in the digest")
	}
}
