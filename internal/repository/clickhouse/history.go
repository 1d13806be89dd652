package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

const historyLimit = 1000

// NodeHistory returns archived events for node in ledger order.
func (r *Repository) NodeHistory(ctx context.Context, node string) ([]model.Event, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("node_history", r.network, err, start)
	}()

	const query = `
SELECT kind, block_number, transaction_index, log_index, node, value
FROM dweb_name_events_by_node FINAL
WHERE network = ? AND node = ?
ORDER BY block_number, transaction_index, log_index
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, string(r.network), node, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("query node history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var events []model.Event
	for rows.Next() {
		var (
			kind  string
			event model.Event
		)
		if err = rows.Scan(
			&kind,
			&event.Order.BlockNumber,
			&event.Order.TransactionIndex,
			&event.Order.LogIndex,
			&event.Node,
			&event.Value,
		); err != nil {
			return nil, fmt.Errorf("scan node history: %w", err)
		}
		event.Kind = model.EventKind(kind)
		event.Decoded = true
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate node history: %w", err)
	}
	return events, nil
}
