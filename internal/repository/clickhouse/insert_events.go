package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

// InsertEvents appends decoded events to the archive. Rows are keyed by
// network and order key, so replaying a batch collapses on merge.
func (r *Repository) InsertEvents(ctx context.Context, events []model.Event) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_events", r.network, err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO dweb_name_events (
	network,
	kind,
	block_number,
	transaction_index,
	log_index,
	node,
	value,
	cleared
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, event := range events {
		if !event.Decoded {
			continue
		}
		if err = batch.Append(
			string(r.network),
			string(event.Kind),
			event.Order.BlockNumber,
			event.Order.TransactionIndex,
			event.Order.LogIndex,
			event.Node,
			event.Value,
			event.Value == "",
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}
