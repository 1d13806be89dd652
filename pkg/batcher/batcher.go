// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher has been stopped.
var ErrStopped = errors.New("batcher stopped")

// Batcher buffers items and flushes them either by size or interval.
// Items are flushed in the order they were added. The first failed flush
// stops the batcher; later Add calls and Stop report that error.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg      sync.WaitGroup
	stop    chan struct{}
	stopped sync.Once
	failed  chan struct{}
	err     error
}

// New constructs a Batcher. A non-positive rps disables rate limiting.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	if flushSize <= 0 {
		flushSize = 1
	}
	if flushInterval <= 0 {
		flushInterval = time.Second
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            rl,
		stop:          make(chan struct{}),
		failed:        make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop drains queued items, flushes them and waits for the loop to exit.
// It returns the first flush error, if any.
func (b *Batcher[T]) Stop() error {
	b.stopped.Do(func() { close(b.stop) })
	b.wg.Wait()
	return b.err
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.failed:
		return b.err
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.failed:
		return b.err
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	flush := func() bool {
		if len(buf) == 0 {
			return true
		}

		b.rl.Take()
		if err := b.flushCallback(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
			b.err = err
			close(b.failed)
			return false
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		buf = buf[:0]
		return true
	}

	for {
		select {
		case <-ctx.Done():
			if b.err == nil {
				b.err = ctx.Err()
				close(b.failed)
			}
			return

		case <-b.stop:
		drain:
			for {
				select {
				case item := <-b.itemsCh:
					buf = append(buf, item)
					if len(buf) >= b.flushSize && !flush() {
						return
					}
				default:
					break drain
				}
			}
			flush()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize && !flush() {
				return
			}

		case <-ticker.C:
			if !flush() {
				return
			}
		}
	}
}
