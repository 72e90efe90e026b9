package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// indexed pairs a result with the position of its input.
type indexed[T any] struct {
	idx int
	val T
}

// ForEach calls fn for every path using up to jobs workers and returns the
// results in input order. On cancellation it stops handing out paths and
// returns the results gathered so far, with zero values for skipped paths,
// together with the wrapped context error.
func ForEach[T any](ctx context.Context, paths []string, jobs int, fn func(context.Context, string) T) ([]T, error) {
	results := make([]T, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(paths))

	workCh := make(chan int)
	outCh := make(chan indexed[T])

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				val := fn(ctx, paths[idx])
				select {
				case <-ctx.Done():
					return
				case outCh <- indexed[T]{idx, val}:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for idx := range paths {
			select {
			case <-ctx.Done():
				return
			case workCh <- idx:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	for item := range outCh {
		results[item.idx] = item.val
	}

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("run cancelled: %w", err)
	}

	return results, nil
}
