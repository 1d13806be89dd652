// Package workerpool provides bounded concurrent processing of indexed items.
package workerpool

import (
	"context"
	"sync"
)

type task[T any] struct {
	index int
	item  T
}

// Process runs process for every item on at most workerCount goroutines.
// The index passed to process is the item's position in items, so callers can
// write results into a preallocated slice without locking. The first error
// cancels the remaining work and is returned.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(ctx context.Context, index int, item T) error,
) error {
	if len(items) == 0 {
		return ctx.Err()
	}
	if workerCount <= 0 || workerCount > len(items) {
		workerCount = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan task[T], workerCount)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-tasks:
					if !ok || ctx.Err() != nil {
						return
					}
					if err := process(ctx, t.index, t.item); err != nil {
						errOnce.Do(func() { firstErr = err })
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for i, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- task[T]{index: i, item: item}:
			}
		}
	}()

	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Map applies fn to every item and returns the results in input order.
// fn reports per-item failures through its result, so one item never stops
// the others; only cancellation of ctx aborts the pool.
func Map[T, R any](ctx context.Context, workerCount int, items []T, fn func(ctx context.Context, item T) R) ([]R, error) {
	results := make([]R, len(items))
	err := Process(ctx, workerCount, items, func(ctx context.Context, i int, item T) error {
		results[i] = fn(ctx, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
