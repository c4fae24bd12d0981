package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/domain"
	"github.com/finquery/portcache/pkg/health"
	"github.com/finquery/portcache/pkg/keys"
	"github.com/finquery/portcache/pkg/store"
	"github.com/finquery/portcache/pkg/warming"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

func TestCacheStack_AgainstRealRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, cleanup := setupRedis(t)
	defer cleanup()

	s := store.New(client, store.Config{})
	ctx := context.Background()

	t.Run("market data round trip", func(t *testing.T) {
		cache := domain.NewMarketDataCache(s)
		frame := &codec.Table{
			Columns: []string{"close"},
			Index:   []string{time.Now().Format("2006-01-02")},
			Cells:   [][]float64{{227.76}},
		}

		if err := cache.Put(ctx, "AAPL", "1y", frame); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, ok := cache.Get(ctx, "AAPL", "1y")
		if !ok {
			t.Fatal("Get missed a fresh frame")
		}
		if got.Cells[0][0] != 227.76 {
			t.Errorf("payload mismatch: %v", got.Cells)
		}
	})

	t.Run("portfolio invalidation spans categories", func(t *testing.T) {
		optCache := domain.NewOptimizationCache(s)
		params := map[string]any{"risk_free_rate": 0.02}
		if err := optCache.Put(ctx, 42, "max_sharpe", params, codec.Record{"sharpe_ratio": 0.571}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := s.Set(ctx, keys.PortfolioMetrics(42), keys.CategoryPortfolioMetrics, codec.Record{"beta": 1.1}, 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		removed := warming.NewInvalidator(s).PortfolioChanged(ctx, 42)
		if removed < 2 {
			t.Errorf("removed %d entries, want >= 2", removed)
		}
		if _, ok := optCache.Get(ctx, 42, "max_sharpe", params); ok {
			t.Error("optimization result survived portfolio invalidation")
		}
	})

	t.Run("stats come from the real store", func(t *testing.T) {
		stats := s.Stats(ctx)
		if stats.UsedMemoryBytes <= 0 {
			t.Errorf("used memory = %d, want > 0 from INFO", stats.UsedMemoryBytes)
		}
		if stats.ClientCount <= 0 {
			t.Errorf("client count = %d, want > 0 from INFO", stats.ClientCount)
		}
	})

	t.Run("health round trip", func(t *testing.T) {
		result := health.NewChecker(s).Check(ctx)
		if !result.Healthy {
			t.Fatalf("expected healthy: %+v", result)
		}
		if result.RoundTrip <= 0 {
			t.Errorf("round trip = %v, want > 0", result.RoundTrip)
		}
	})
}
