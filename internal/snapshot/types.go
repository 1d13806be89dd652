package snapshot

import (
	"context"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		ScanForward(ctx context.Context, fn func(model.Entry[model.ForwardRecord]) error) error
		ScanReverse(ctx context.Context, fn func(model.Entry[model.ReverseRecord]) error) error
		Checkpoint(ctx context.Context) (uint64, bool, error)
	}
	Sink interface {
		Flush(ctx context.Context) (int64, error)
		SetForwardRecords(ctx context.Context, entries []model.Entry[model.ForwardRecord]) error
		SetReverseRecords(ctx context.Context, entries []model.Entry[model.ReverseRecord]) error
		SetCheckpoint(ctx context.Context, height uint64) error
	}
)
