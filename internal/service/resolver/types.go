package resolver

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RecordStore interface {
		GetForward(ctx context.Context, node string) (model.ForwardRecord, bool, error)
		SetForward(ctx context.Context, node string, record model.ForwardRecord) error
		GetReverse(ctx context.Context, node string) (model.ReverseRecord, bool, error)
		SetReverse(ctx context.Context, node string, record model.ReverseRecord) error
	}
	LiveReader interface {
		ReadForward(ctx context.Context, name string) (model.Binding, error)
		ReadReverse(ctx context.Context, addr common.Address) (model.Binding, error)
	}
	Metrics interface {
		ObserveResolve(kind string, refresh bool, err error, started time.Time)
	}
)
