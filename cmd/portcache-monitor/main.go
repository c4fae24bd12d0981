// Command portcache-monitor serves cache health and metrics endpoints and
// periodically logs a stats snapshot for a shared cache deployment.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/finquery/portcache/pkg/health"
	"github.com/finquery/portcache/pkg/logging"
	"github.com/finquery/portcache/pkg/store"
)

func main() {
	// Configuration from environment
	redisURL := getEnv("REDIS_URL", "localhost:6379")
	port := getEnv("PORT", "8080")
	interval := getDurationEnv("CHECK_INTERVAL", time.Minute)

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", redisURL).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", redisURL).Msg("connected to Redis")

	cacheStore := store.New(redisClient, store.Config{})
	defer cacheStore.Close()

	checker := health.NewChecker(cacheStore)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler(checker))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		logger.Info().Str("port", port).Msg("monitor listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			result := checker.Check(ctx)
			logger.Info().
				Bool("healthy", result.Healthy).
				Dur("round_trip", result.RoundTrip).
				Float64("hit_rate_pct", result.Stats.HitRatePct).
				Int64("used_memory_bytes", result.Stats.UsedMemoryBytes).
				Msg("periodic cache check")
		case <-stop:
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
			return
		}
	}
}

func healthHandler(checker *health.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := checker.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if !result.Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
