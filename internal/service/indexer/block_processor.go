package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

type blockProcessor struct {
	source  EventSource
	records RecordWriter
	archive EventArchive
	metrics Metrics
	logger  *zap.Logger
}

// Process applies every resolver event in [start, end] to the record store.
func (p *blockProcessor) Process(ctx context.Context, start, end uint64) error {
	var addrEvents, nameEvents []model.Event

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		addrEvents, err = p.source.QueryEvents(gctx, model.AddrChanged, start, end)
		return err
	})
	g.Go(func() (err error) {
		nameEvents, err = p.source.QueryEvents(gctx, model.NameChanged, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	addrApplied := p.filterDecoded(model.AddrChanged, addrEvents)
	nameApplied := p.filterDecoded(model.NameChanged, nameEvents)

	g, gctx = errgroup.WithContext(ctx)
	if len(addrApplied) > 0 {
		g.Go(func() error {
			return p.records.SetForwardRecords(gctx, collapse(addrApplied, func(e model.Event) model.ForwardRecord {
				order := e.Order
				return model.ForwardRecord{OrderKey: &order, Address: e.Binding()}
			}))
		})
	}
	if len(nameApplied) > 0 {
		g.Go(func() error {
			return p.records.SetReverseRecords(gctx, collapse(nameApplied, func(e model.Event) model.ReverseRecord {
				order := e.Order
				return model.ReverseRecord{OrderKey: &order, Name: e.Binding()}
			}))
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	if archived := len(addrApplied) + len(nameApplied); archived > 0 {
		events := make([]model.Event, 0, archived)
		events = append(events, addrApplied...)
		events = append(events, nameApplied...)
		if err := p.archive.InsertEvents(ctx, events); err != nil {
			return fmt.Errorf("archive events: %w", err)
		}
	}

	p.metrics.ObserveEvents(model.AddrChanged, len(addrApplied), len(addrEvents)-len(addrApplied))
	p.metrics.ObserveEvents(model.NameChanged, len(nameApplied), len(nameEvents)-len(nameApplied))
	return nil
}

func (p *blockProcessor) filterDecoded(kind model.EventKind, events []model.Event) []model.Event {
	decoded := make([]model.Event, 0, len(events))
	for _, e := range events {
		if !e.Decoded {
			p.logger.Warn("skipping event without decoded arguments",
				zap.String("kind", string(kind)),
				zap.Uint64("block", e.Order.BlockNumber),
				zap.Uint32("tx_index", e.Order.TransactionIndex),
				zap.Uint32("log_index", e.Order.LogIndex),
			)
			continue
		}
		decoded = append(decoded, e)
	}
	return decoded
}

// collapse keeps one entry per node. Among events for the same node the one
// with the highest order key wins; ties go to the later position.
func collapse[T any](events []model.Event, record func(model.Event) T) []model.Entry[T] {
	entries := make([]model.Entry[T], 0, len(events))
	latest := make(map[string]int, len(events))
	orders := make([]model.EventOrderKey, 0, len(events))

	for _, e := range events {
		if idx, ok := latest[e.Node]; ok {
			if orders[idx].After(e.Order) {
				continue
			}
			entries[idx].Record = record(e)
			orders[idx] = e.Order
			continue
		}
		latest[e.Node] = len(entries)
		entries = append(entries, model.Entry[T]{Key: e.Node, Record: record(e)})
		orders = append(orders, e.Order)
	}
	return entries
}
