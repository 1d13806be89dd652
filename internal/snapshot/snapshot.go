// Package snapshot exports the record store to JSON Lines and seeds a store
// from such a file.
//
// Every line is one object: {"kind":"forward"|"reverse","node":...,"record":{...}}
// for records and {"kind":"checkpoint","block":N} for the checkpoint, which
// Export writes last.
package snapshot

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/pkg/batcher"
)

const (
	KindForward    = "forward"
	KindReverse    = "reverse"
	KindCheckpoint = "checkpoint"

	DefaultChunkSize = 1000

	maxLineBytes = 1 << 20
)

var ErrMalformedLine = errors.New("malformed snapshot line")

type line struct {
	Kind   string          `json:"kind"`
	Node   string          `json:"node,omitempty"`
	Record json.RawMessage `json:"record,omitempty"`
	Block  *uint64         `json:"block,omitempty"`
}

// Stats counts what was exported or imported.
type Stats struct {
	Forward       int
	Reverse       int
	Checkpoint    uint64
	HasCheckpoint bool
}

// Export writes every record of src followed by its checkpoint to w.
func Export(ctx context.Context, src Source, w io.Writer) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	writeRecord := func(kind, node string, record any) error {
		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encode %s record %s: %w", kind, node, err)
		}
		return enc.Encode(line{Kind: kind, Node: node, Record: raw})
	}

	err := src.ScanForward(ctx, func(e model.Entry[model.ForwardRecord]) error {
		stats.Forward++
		return writeRecord(KindForward, e.Key, e.Record)
	})
	if err != nil {
		return stats, fmt.Errorf("export forward records: %w", err)
	}
	err = src.ScanReverse(ctx, func(e model.Entry[model.ReverseRecord]) error {
		stats.Reverse++
		return writeRecord(KindReverse, e.Key, e.Record)
	})
	if err != nil {
		return stats, fmt.Errorf("export reverse records: %w", err)
	}

	height, found, err := src.Checkpoint(ctx)
	if err != nil {
		return stats, fmt.Errorf("export checkpoint: %w", err)
	}
	if found {
		stats.Checkpoint, stats.HasCheckpoint = height, true
		if err := enc.Encode(line{Kind: KindCheckpoint, Block: &height}); err != nil {
			return stats, err
		}
	}
	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("flush snapshot: %w", err)
	}
	return stats, nil
}

// Importer seeds a store from a snapshot.
type Importer struct {
	sink      Sink
	chunkSize int
	logger    *zap.Logger
}

// NewImporter returns an Importer writing records in chunks of chunkSize.
func NewImporter(sink Sink, chunkSize int, logger *zap.Logger) (*Importer, error) {
	if sink == nil {
		return nil, errors.New("snapshot sink is required")
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Importer{sink: sink, chunkSize: chunkSize, logger: logger.Named("snapshot")}, nil
}

// Import flushes the store, then loads every record of r. The checkpoint is
// written only after all records were stored, so an interrupted import never
// claims progress.
func (im *Importer) Import(ctx context.Context, r io.Reader) (stats Stats, err error) {
	deleted, err := im.sink.Flush(ctx)
	if err != nil {
		return stats, fmt.Errorf("flush store: %w", err)
	}
	im.logger.Info("store flushed", zap.Int64("deleted_keys", deleted))

	forward := batcher.New(im.logger.Named("forward"), im.sink.SetForwardRecords, im.chunkSize, time.Second, 0)
	reverse := batcher.New(im.logger.Named("reverse"), im.sink.SetReverseRecords, im.chunkSize, time.Second, 0)
	forward.Start(ctx)
	reverse.Start(ctx)

	var checkpoint *uint64
	readErr := im.read(ctx, r, func(l line, number int) error {
		switch l.Kind {
		case KindForward:
			var record model.ForwardRecord
			if err := decodeRecord(l, number, &record); err != nil {
				return err
			}
			stats.Forward++
			return forward.Add(ctx, model.Entry[model.ForwardRecord]{Key: l.Node, Record: record})
		case KindReverse:
			var record model.ReverseRecord
			if err := decodeRecord(l, number, &record); err != nil {
				return err
			}
			stats.Reverse++
			return reverse.Add(ctx, model.Entry[model.ReverseRecord]{Key: l.Node, Record: record})
		case KindCheckpoint:
			if l.Block == nil {
				return fmt.Errorf("%w %d: checkpoint without block", ErrMalformedLine, number)
			}
			checkpoint = l.Block
			return nil
		default:
			return fmt.Errorf("%w %d: unknown kind %q", ErrMalformedLine, number, l.Kind)
		}
	})

	forwardErr := forward.Stop()
	reverseErr := reverse.Stop()
	if err = errors.Join(readErr, forwardErr, reverseErr); err != nil {
		return stats, err
	}

	if checkpoint != nil {
		if err = im.sink.SetCheckpoint(ctx, *checkpoint); err != nil {
			return stats, fmt.Errorf("set checkpoint: %w", err)
		}
		stats.Checkpoint, stats.HasCheckpoint = *checkpoint, true
	}
	return stats, nil
}

func (im *Importer) read(ctx context.Context, r io.Reader, fn func(l line, number int) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	number := 0
	for scanner.Scan() {
		number++
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var l line
		if err := json.Unmarshal(raw, &l); err != nil {
			return fmt.Errorf("%w %d: %v", ErrMalformedLine, number, err)
		}
		if err := fn(l, number); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	return nil
}

func decodeRecord(l line, number int, record any) error {
	if l.Node == "" || len(l.Record) == 0 {
		return fmt.Errorf("%w %d: %s record needs node and record", ErrMalformedLine, number, l.Kind)
	}
	if err := json.Unmarshal(l.Record, record); err != nil {
		return fmt.Errorf("%w %d: %v", ErrMalformedLine, number, err)
	}
	return nil
}
