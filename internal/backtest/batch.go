package backtest

import (
	"context"
	"sync"

	"github.com/yourusername/trade-lens/internal/models"
)

// BatchRequest names one series to backtest
type BatchRequest struct {
	Symbol string
	Market models.Market
	Series models.Series
}

// RunBatch executes one backtest per request across a bounded pool of
// workers. Each run owns its mutable state; only the optimizer parameter
// cache is shared. There is no mid-run cancellation: a cancelled context
// stops unstarted runs, and results for skipped requests are nil.
// Results are returned in request order.
func (e *Engine) RunBatch(ctx context.Context, requests []BatchRequest, workers int) []*models.BacktestResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	results := make([]*models.BacktestResult, len(requests))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				request := requests[idx]
				results[idx] = e.RunBacktest(request.Symbol, request.Series, request.Market)
			}
		}()
	}

	for idx := range requests {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
