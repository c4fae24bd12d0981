// Package metrics provides the centralized Prometheus metrics registry for
// the cache layer. All metrics are defined in their respective packages
// (store, warming) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the cache layer.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Store Metrics (pkg/store):
//   - portcache_store_hits_total (Counter): Cache hits
//   - portcache_store_misses_total (Counter): Cache misses, degraded-store misses included
//   - portcache_store_errors_total{operation} (Counter): Contained store errors by operation
//   - portcache_store_decode_failures_total (Counter): Payloads that failed to decode and were served as misses
//   - portcache_store_keys_removed_total (Counter): Keys removed by deletes and pattern invalidation
//
// Warming Metrics (pkg/warming):
//   - portcache_warming_tasks_succeeded_total (Counter): Completed warming tasks
//   - portcache_warming_tasks_failed_total (Counter): Failed warming tasks (isolated, never fatal to a run)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(portcache_store_hits_total[5m])) /
//   (sum(rate(portcache_store_hits_total[5m])) + sum(rate(portcache_store_misses_total[5m])))
//
//   # Contained Error Rate by Operation
//   rate(portcache_store_errors_total[5m])
//
//   # Warming Failure Ratio
//   rate(portcache_warming_tasks_failed_total[15m]) /
//   (rate(portcache_warming_tasks_succeeded_total[15m]) + rate(portcache_warming_tasks_failed_total[15m]))
