package keys

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Digest reduces a parameter mapping to a deterministic 16-hex-character
// digest. The mapping is canonicalized (keys sorted recursively) before
// hashing, so logically identical parameter sets produce the same digest
// regardless of insertion order. xxhash64 is deliberate: a collision costs
// a cache miss, not correctness, so a cryptographic hash buys nothing.
func Digest(params map[string]any) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(canonicalize(params)))
}

// canonicalize produces a deterministic byte representation of a value.
// Maps are emitted with sorted keys; slices keep their order.
func canonicalize(v any) []byte {
	switch x := v.(type) {
	case nil:
		return []byte("null")
	case map[string]any:
		return canonicalizeMap(x)
	case []any:
		return canonicalizeSlice(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			// Non-JSON value: its formatted form is still deterministic.
			return []byte(fmt.Sprintf("%#v", x))
		}
		return data
	}
}

func canonicalizeMap(m map[string]any) []byte {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range ks {
		if i > 0 {
			b.WriteByte(',')
		}
		kj, _ := json.Marshal(k)
		b.Write(kj)
		b.WriteByte(':')
		b.Write(canonicalize(m[k]))
	}
	b.WriteByte('}')
	return []byte(b.String())
}

func canonicalizeSlice(s []any) []byte {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(canonicalize(v))
	}
	b.WriteByte(']')
	return []byte(b.String())
}
