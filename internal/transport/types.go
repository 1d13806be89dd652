package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Resolver interface {
		ResolveName(ctx context.Context, name string, forceRefresh bool) (model.Binding, error)
		ResolveAddress(ctx context.Context, address string, forceRefresh bool) (model.AddressResolution, error)
	}
	StatusReporter interface {
		Status() model.Status
	}
	EventHistory interface {
		NodeHistory(ctx context.Context, node string) ([]model.Event, error)
	}
	Metrics interface {
		ObserveRequest(route string, code int, started time.Time)
	}
)
