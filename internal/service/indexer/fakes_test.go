package indexer

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

var errInjected = errors.New("injected failure")

type metricsStub struct{}

func (metricsStub) ObserveProcessBatch(error, uint64, time.Time) {}
func (metricsStub) ObserveEvents(model.EventKind, int, int) {}
func (metricsStub) ObserveBlock(uint64) {}
func (metricsStub) SetCheckpoint(uint64) {}
func (metricsStub) SetHead(uint64) {}

// memoryStore is an in-memory RecordWriter and CheckpointStore.
type memoryStore struct {
	mu            sync.Mutex
	forward       map[string]model.ForwardRecord
	reverse       map[string]model.ReverseRecord
	checkpoint    uint64
	hasCheckpoint bool
	history       []uint64

	reverseCalls  int
	failReverseOn int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		forward: make(map[string]model.ForwardRecord),
		reverse: make(map[string]model.ReverseRecord),
	}
}

func (s *memoryStore) SetForwardRecords(_ context.Context, entries []model.Entry[model.ForwardRecord]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.forward[e.Key] = e.Record
	}
	return nil
}

func (s *memoryStore) SetReverseRecords(_ context.Context, entries []model.Entry[model.ReverseRecord]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reverseCalls++
	if s.reverseCalls == s.failReverseOn {
		return errInjected
	}
	for _, e := range entries {
		s.reverse[e.Key] = e.Record
	}
	return nil
}

func (s *memoryStore) Checkpoint(context.Context) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkpoint, s.hasCheckpoint, nil
}

func (s *memoryStore) SetCheckpoint(_ context.Context, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoint = height
	s.hasCheckpoint = true
	s.history = append(s.history, height)
	return nil
}

func (s *memoryStore) snapshot() (map[string]model.ForwardRecord, map[string]model.ReverseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.forward), maps.Clone(s.reverse)
}

// fakeSource serves events from memory and records queried ranges.
type fakeSource struct {
	mu     sync.Mutex
	head   uint64
	events map[model.EventKind][]model.Event
	ranges [][2]uint64
}

func (s *fakeSource) CurrentHeight(context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.head, nil
}

func (s *fakeSource) QueryEvents(_ context.Context, kind model.EventKind, from, to uint64) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == model.AddrChanged {
		s.ranges = append(s.ranges, [2]uint64{from, to})
	}
	var out []model.Event
	for _, e := range s.events[kind] {
		if e.Order.BlockNumber >= from && e.Order.BlockNumber <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeSource) queried() [][2]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][2]uint64(nil), s.ranges...)
}

func addrEvent(node string, block uint64, logIndex uint32, value string) model.Event {
	return model.Event{
		Kind:    model.AddrChanged,
		Order:   model.EventOrderKey{BlockNumber: block, LogIndex: logIndex},
		Node:    node,
		Value:   value,
		Decoded: true,
	}
}

func nameEvent(node string, block uint64, logIndex uint32, value string) model.Event {
	e := addrEvent(node, block, logIndex, value)
	e.Kind = model.NameChanged
	return e
}
