package scale

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchProgress is reported after each completed batch.
type BatchProgress struct {
	Index     int
	Completed int
	Total     int
}

// BatchOptions bound a batched run.
type BatchOptions struct {
	// Size is both the batch length and the concurrency within a batch.
	Size int
	// OnBatch, when set, runs after batch N completes and before batch N+1.
	OnBatch func(BatchProgress)
}

// DefaultBatchSize is used when BatchOptions.Size is not positive.
const DefaultBatchSize = 50

// ProcessInBatches applies fn to every item, at most Size at a time, one
// batch after another. Results keep input order. The first error stops the
// run once the batch it occurred in has finished; ctx is checked between
// batches.
func ProcessInBatches[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), opts BatchOptions) ([]R, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultBatchSize
	}
	results := make([]R, len(items))

	for batch, start := 0, 0; start < len(items); batch, start = batch+1, start+size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+size, len(items))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(size)
		for i := start; i < end; i++ {
			g.Go(func() error {
				r, err := fn(gctx, items[i])
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if opts.OnBatch != nil {
			opts.OnBatch(BatchProgress{Index: batch, Completed: end, Total: len(items)})
		}
	}
	return results, nil
}
