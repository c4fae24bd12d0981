package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hits tracks cache hits.
	Hits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcache_store_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// Misses tracks cache misses, including degraded-store misses.
	Misses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcache_store_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// Errors tracks contained store errors by operation.
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portcache_store_errors_total",
			Help: "Total number of contained store operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "delete_pattern", "ttl", "extend_ttl", "flush", "stats"
	)

	// DecodeFailures tracks payloads that could not be reconstructed and
	// were served as misses.
	DecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcache_store_decode_failures_total",
			Help: "Total number of cache payloads that failed to decode",
		},
	)

	// KeysRemoved tracks keys removed by delete and pattern invalidation.
	KeysRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcache_store_keys_removed_total",
			Help: "Total number of keys removed by deletes and pattern invalidation",
		},
	)
)
