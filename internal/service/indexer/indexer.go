// Package indexer mirrors resolver events into the record store.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

// ErrSubscriptionClosed is returned by Run when the block notification
// channel closes.
var ErrSubscriptionClosed = errors.New("block subscription closed")

// Config tunes the indexer.
type Config struct {
	Network model.Network
	// StartBlock overrides the network deployment height used when no
	// checkpoint has been persisted yet.
	StartBlock   uint64
	BatchSize    uint64
	BlockTimeout time.Duration
}

// Indexer advances the persisted checkpoint towards the ledger head in
// bounded batches. At most one catch-up pass runs at a time.
type Indexer struct {
	logger      *zap.Logger
	source      EventSource
	checkpoints CheckpointStore
	processor   BlockProcessor
	metrics     Metrics
	watchdog    *Watchdog
	batchSize   uint64
	startBlock  uint64

	checkpoint atomic.Uint64
	head       atomic.Uint64
	iterating  atomic.Bool
	kick       chan struct{}
}

// New builds an Indexer. archive may be nil.
func New(
	source EventSource,
	records RecordWriter,
	checkpoints CheckpointStore,
	archive EventArchive,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Indexer, error) {
	if source == nil {
		return nil, errors.New("event source is required")
	}
	if records == nil {
		return nil, errors.New("record writer is required")
	}
	if checkpoints == nil {
		return nil, errors.New("checkpoint store is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if archive == nil {
		archive = noopArchive{}
	}

	startBlock := cfg.StartBlock
	if startBlock == 0 {
		var err error
		if startBlock, err = cfg.Network.StartBlock(); err != nil {
			return nil, err
		}
	}
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	timeout := cfg.BlockTimeout
	if timeout <= 0 {
		timeout = DefaultBlockTimeout
	}

	logger = logger.With(zap.String("network", string(cfg.Network)))

	return &Indexer{
		logger:      logger,
		source:      source,
		checkpoints: checkpoints,
		metrics:     metrics,
		watchdog:    NewWatchdog(timeout),
		batchSize:   batchSize,
		startBlock:  startBlock,
		kick:        make(chan struct{}, 1),
		processor: &blockProcessor{
			source:  source,
			records: records,
			archive: archive,
			metrics: metrics,
			logger:  logger.Named("blockProcessor"),
		},
	}, nil
}

// Start loads the persisted checkpoint, seeding it from the start block when
// absent, and reads the current head.
func (i *Indexer) Start(ctx context.Context) error {
	stored, found, err := i.checkpoints.Checkpoint(ctx)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	checkpoint := stored
	if !found || stored == 0 {
		// The deployment block itself still has to be scanned.
		checkpoint = i.startBlock - 1
	}

	head, err := i.source.CurrentHeight(ctx)
	if err != nil {
		return fmt.Errorf("get current height: %w", err)
	}

	i.checkpoint.Store(checkpoint)
	i.head.Store(head)
	i.metrics.SetCheckpoint(checkpoint)
	i.metrics.SetHead(head)

	var behind uint64
	if head > checkpoint {
		behind = head - checkpoint
	}
	i.logger.Info("indexer started",
		zap.Uint64("last_known_block", checkpoint),
		zap.Uint64("current_block", head),
		zap.Uint64("blocks_behind", behind),
		zap.Bool("from_checkpoint", found && stored != 0),
	)
	return nil
}

// Advance processes batches until the checkpoint reaches the head. A call made
// while another pass is running returns immediately; the running pass picks up
// any head raised in the meantime. Batches are never aborted halfway: ctx is
// only checked between batches.
func (i *Indexer) Advance(ctx context.Context) error {
	if !i.iterating.CompareAndSwap(false, true) {
		return nil
	}
	defer i.iterating.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		checkpoint, head := i.checkpoint.Load(), i.head.Load()
		if checkpoint >= head {
			return nil
		}
		start := checkpoint + 1
		end := min(checkpoint+i.batchSize, head)
		if err := i.applyBatch(context.WithoutCancel(ctx), start, end); err != nil {
			return err
		}
	}
}

func (i *Indexer) applyBatch(ctx context.Context, start, end uint64) (err error) {
	started := time.Now()
	defer func() {
		i.metrics.ObserveProcessBatch(err, end-start+1, started)
	}()

	i.logger.Info("processing blocks", zap.Uint64("start", start), zap.Uint64("end", end))
	if err = i.processor.Process(ctx, start, end); err != nil {
		return fmt.Errorf("process blocks %d-%d: %w", start, end, err)
	}
	if err = i.checkpoints.SetCheckpoint(ctx, end); err != nil {
		return fmt.Errorf("persist checkpoint %d: %w", end, err)
	}

	i.checkpoint.Store(end)
	i.metrics.SetCheckpoint(end)
	return nil
}

// HandleBlock records a new block notification: it resets the watchdog,
// raises the head and schedules a catch-up pass.
func (i *Indexer) HandleBlock(height uint64) {
	i.logger.Debug("new block", zap.Uint64("height", height))
	i.watchdog.Reset()
	i.metrics.ObserveBlock(i.raiseHead(height))

	select {
	case i.kick <- struct{}{}:
	default:
	}
}

func (i *Indexer) raiseHead(height uint64) uint64 {
	for {
		current := i.head.Load()
		if height <= current {
			return current
		}
		if i.head.CompareAndSwap(current, height) {
			return height
		}
	}
}

// Run consumes block notifications and keeps the store caught up until ctx
// is done or a fatal condition occurs: an ingestion failure, a stall or a
// closed subscription. Start must be called first.
func (i *Indexer) Run(ctx context.Context, blocks <-chan uint64) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return i.watchdog.Run(ctx)
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case height, ok := <-blocks:
				if !ok {
					return ErrSubscriptionClosed
				}
				i.HandleBlock(height)
			}
		}
	})

	g.Go(func() error {
		if err := i.Advance(ctx); err != nil {
			return err
		}
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-i.kick:
				if err := i.Advance(ctx); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

// Status reports the last processed block and the latest known head.
func (i *Indexer) Status() model.Status {
	return model.Status{
		LastProcessedBlock: i.checkpoint.Load(),
		CurrentBlockNumber: i.head.Load(),
	}
}
