package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStalled is returned when no new block arrives within the watchdog window.
var ErrStalled = errors.New("no new blocks received")

// Watchdog fails when Reset is not called at least once per timeout.
type Watchdog struct {
	timeout time.Duration
	reset   chan struct{}
}

func NewWatchdog(timeout time.Duration) *Watchdog {
	return &Watchdog{
		timeout: timeout,
		reset:   make(chan struct{}, 1),
	}
}

// Reset restarts the window. It never blocks.
func (w *Watchdog) Reset() {
	select {
	case w.reset <- struct{}{}:
	default:
	}
}

// Run arms the timer and blocks until ctx is done or the window elapses
// without a Reset.
func (w *Watchdog) Run(ctx context.Context) error {
	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.reset:
			timer.Reset(w.timeout)
		case <-timer.C:
			return fmt.Errorf("%w for %s", ErrStalled, w.timeout)
		}
	}
}
