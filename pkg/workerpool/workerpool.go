// Package workerpool provides bounded concurrent processing of work items.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stats summarizes a Process call.
type Stats struct {
	// Started counts items handed to a worker.
	Started int
	// Failed counts items whose process call returned an error.
	Failed int
}

// Process runs process over items with at most workerCount concurrent calls. An item error
// is passed to onError and does not stop the pool. Once ctx is done no further items are
// started; Process then waits for running items and returns ctx.Err().
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onError func(T, error),
) (Stats, error) {
	if workerCount <= 0 {
		workerCount = 1
	}

	var (
		g     errgroup.Group
		mu    sync.Mutex
		stats Stats
	)
	g.SetLimit(workerCount)
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		stats.Started++
		g.Go(func() error {
			if err := process(ctx, item); err != nil {
				mu.Lock()
				stats.Failed++
				mu.Unlock()
				if onError != nil {
					onError(item, err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if stats.Started < len(items) {
		return stats, ctx.Err()
	}
	return stats, nil
}
