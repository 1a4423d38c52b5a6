package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/darkzone/pkg/sequence"
)

// Concurrent runs action for each element of the iterator, at most limit at a time
// (no limit when limit < 1). It waits for all goroutines to finish and returns the
// first error encountered; once an action failed, the remaining ones see a
// cancelled context.
func Concurrent[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for value := range i.Seq() {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return action(ctx, value)
		})
	}
	return g.Wait()
}

// ParallelMap applies mapFn to each element of the iterator in parallel, preserving
// order. The workers parameter caps the number of goroutines.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))
	err := Concurrent(ctx, sequence.From(indices(len(in))), workers, func(ctx context.Context, idx int) error {
		r, err := mapFn(ctx, in[idx])
		if err != nil {
			return err
		}
		out[idx] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Batch splits the iterator into chunks of batchSize and processes each chunk in its
// own goroutine.
func Batch[T any](ctx context.Context, i *sequence.Iterator[T], batchSize int, action func(context.Context, []T) error) error {
	in := i.Collect()
	if batchSize < 1 {
		batchSize = max(len(in), 1)
	}
	var chunks [][]T
	for idx := 0; idx < len(in); idx += batchSize {
		chunks = append(chunks, in[idx:min(idx+batchSize, len(in))])
	}
	return Concurrent(ctx, sequence.From(chunks), 0, action)
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
