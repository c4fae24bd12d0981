package store

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
)

// counters holds the process-local lookup counters. Plain atomics: lookups
// arrive from many request-handling goroutines at once.
type counters struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a point-in-time snapshot of cache effectiveness plus what the
// backing store reports about itself.
type Stats struct {
	UsedMemoryBytes int64   `json:"used_memory_bytes"`
	ClientCount     int64   `json:"client_count"`
	HitCount        int64   `json:"hit_count"`
	MissCount       int64   `json:"miss_count"`
	HitRatePct      float64 `json:"hit_rate_pct"`
}

// HitRate returns hits/(hits+misses) as a percentage, 0 when there have
// been no lookups.
func (s *Store) HitRate() float64 {
	hits := s.counters.hits.Load()
	misses := s.counters.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Stats snapshots the counters and merges in the store's INFO report.
// An unreachable store degrades to a counters-only snapshot.
func (s *Store) Stats(ctx context.Context) Stats {
	stats := Stats{
		HitCount:   s.counters.hits.Load(),
		MissCount:  s.counters.misses.Load(),
		HitRatePct: s.HitRate(),
	}

	octx, cancel := s.opCtx(ctx)
	defer cancel()

	info, err := s.rdb.Info(octx, "memory", "clients").Result()
	if err != nil {
		Errors.WithLabelValues("stats").Inc()
		s.log.Warn().Err(err).Msg("store info unavailable, counters-only stats")
		return stats
	}

	stats.UsedMemoryBytes = infoInt(info, "used_memory")
	stats.ClientCount = infoInt(info, "connected_clients")
	return stats
}

// infoInt pulls a single integer field out of a Redis INFO report.
func infoInt(info, field string) int64 {
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		val, found := strings.CutPrefix(line, field+":")
		if !found {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
