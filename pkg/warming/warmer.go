package warming

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/finquery/portcache/pkg/codec"
	"github.com/finquery/portcache/pkg/domain"
	"github.com/finquery/portcache/pkg/logging"
)

// defaultConcurrency bounds how many warming tasks run at once.
const defaultConcurrency = 4

// Task is one independent unit of warming work. Run should write through
// a domain cache and respect ctx cancellation.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Report summarizes a warming run. A run is a partial success when some
// tasks fail: the failures are counted and recorded, never fatal to the
// run.
type Report struct {
	Succeeded int
	Failed    int
	Errors    map[string]error
	Duration  time.Duration
}

// Warmer executes warming tasks concurrently with per-task failure
// isolation.
type Warmer struct {
	concurrency int
	log         zerolog.Logger
}

// NewWarmer creates a warmer. concurrency <= 0 selects the default.
func NewWarmer(concurrency int) *Warmer {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Warmer{
		concurrency: concurrency,
		log:         logging.NewLogger("warmer"),
	}
}

// Warm runs every task and reports the outcome. Cancelling ctx stops
// outstanding tasks; already-written entries stay (partial warming is
// fine, partial writes cannot happen below the store layer).
func (w *Warmer) Warm(ctx context.Context, tasks []Task) Report {
	start := time.Now()
	report := Report{Errors: make(map[string]error)}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			err := task.Run(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.Errors[task.Name] = err
				TasksFailed.Inc()
				w.log.Warn().Err(err).Str("task", task.Name).Msg("warming task failed")
				return nil // one failed unit must not abort the others
			}
			report.Succeeded++
			TasksSucceeded.Inc()
			w.log.Debug().Str("task", task.Name).Msg("warming task complete")
			return nil
		})
	}

	_ = g.Wait()
	report.Duration = time.Since(start)

	w.log.Info().Int("succeeded", report.Succeeded).Int("failed", report.Failed).
		Dur("duration", report.Duration).Msg("warming run complete")
	return report
}

// MarketLoader recomputes a price frame from the source of truth.
type MarketLoader func(ctx context.Context, symbol, period string) (*codec.Table, error)

// OptimizationLoader recomputes an optimization result.
type OptimizationLoader func(ctx context.Context, portfolioID int64, method string, params map[string]any) (codec.Record, error)

// DefaultIndexSymbols are the major index trackers warmed by default.
var DefaultIndexSymbols = []string{"SPY", "QQQ", "DIA", "IWM", "VTI"}

// MarketDataTasks builds one warming task per symbol: load, then write
// through the market data cache.
func MarketDataTasks(cache *domain.MarketDataCache, load MarketLoader, symbols []string, period string) []Task {
	tasks := make([]Task, 0, len(symbols))
	for _, symbol := range symbols {
		symbol := symbol
		tasks = append(tasks, Task{
			Name: fmt.Sprintf("market-data/%s/%s", symbol, period),
			Run: func(ctx context.Context) error {
				frame, err := load(ctx, symbol, period)
				if err != nil {
					return fmt.Errorf("load %s: %w", symbol, err)
				}
				return cache.Put(ctx, symbol, period, frame)
			},
		})
	}
	return tasks
}

// OptimizationRequest identifies one optimization to pre-warm.
type OptimizationRequest struct {
	PortfolioID int64
	Method      string
	Params      map[string]any
}

// OptimizationTasks builds one warming task per optimization request.
func OptimizationTasks(cache *domain.OptimizationCache, load OptimizationLoader, requests []OptimizationRequest) []Task {
	tasks := make([]Task, 0, len(requests))
	for _, req := range requests {
		req := req
		tasks = append(tasks, Task{
			Name: fmt.Sprintf("optimization/%d/%s", req.PortfolioID, req.Method),
			Run: func(ctx context.Context) error {
				result, err := load(ctx, req.PortfolioID, req.Method, req.Params)
				if err != nil {
					return fmt.Errorf("optimize portfolio %d: %w", req.PortfolioID, err)
				}
				return cache.Put(ctx, req.PortfolioID, req.Method, req.Params, result)
			},
		})
	}
	return tasks
}
