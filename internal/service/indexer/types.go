package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	EventSource interface {
		CurrentHeight(ctx context.Context) (uint64, error)
		QueryEvents(ctx context.Context, kind model.EventKind, from, to uint64) ([]model.Event, error)
	}
	RecordWriter interface {
		SetForwardRecords(ctx context.Context, entries []model.Entry[model.ForwardRecord]) error
		SetReverseRecords(ctx context.Context, entries []model.Entry[model.ReverseRecord]) error
	}
	CheckpointStore interface {
		Checkpoint(ctx context.Context) (uint64, bool, error)
		SetCheckpoint(ctx context.Context, height uint64) error
	}
	EventArchive interface {
		InsertEvents(ctx context.Context, events []model.Event) error
	}
	BlockProcessor interface {
		Process(ctx context.Context, start, end uint64) error
	}
	Metrics interface {
		ObserveProcessBatch(err error, blocks uint64, started time.Time)
		ObserveEvents(kind model.EventKind, applied, skipped int)
		ObserveBlock(height uint64)
		SetCheckpoint(height uint64)
		SetHead(height uint64)
	}
)

type noopArchive struct{}

func (noopArchive) InsertEvents(context.Context, []model.Event) error { return nil }
