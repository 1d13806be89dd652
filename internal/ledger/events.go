package ledger

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/pkg/safe"
)

// QueryEvents returns the kind events emitted in the closed range [from, to],
// ordered by their position in the ledger. Logs that cannot be decoded are
// returned with Decoded set to false.
func (c *Client) QueryEvents(ctx context.Context, kind model.EventKind, from, to uint64) ([]model.Event, error) {
	contract, err := c.eventContract(kind)
	if err != nil {
		return nil, err
	}
	if from > to {
		return nil, fmt.Errorf("invalid block range [%d, %d]", from, to)
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{contract},
		Topics:    [][]common.Hash{{contractsABI.Events[string(kind)].ID}},
	}

	c.limiter.Take()
	started := time.Now()
	logs, err := c.eth.FilterLogs(ctx, query)
	c.metrics.Observe("filter_logs", err, started)
	if err != nil {
		return nil, fmt.Errorf("filter %s logs [%d, %d]: %w", kind, from, to, err)
	}

	events := make([]model.Event, 0, len(logs))
	for i := range logs {
		if logs[i].Removed {
			continue
		}
		event := decodeLog(kind, logs[i])
		if !event.Decoded {
			c.logger.Warn("undecodable log",
				zap.String("kind", string(kind)),
				zap.Uint64("block", logs[i].BlockNumber),
				zap.Uint("log_index", logs[i].Index),
				zap.String("tx", logs[i].TxHash.Hex()),
			)
		}
		events = append(events, event)
	}

	slices.SortStableFunc(events, func(a, b model.Event) int {
		return a.Order.Compare(b.Order)
	})
	return events, nil
}

func (c *Client) eventContract(kind model.EventKind) (common.Address, error) {
	switch kind {
	case model.AddrChanged:
		return c.contracts.PublicResolver, nil
	case model.NameChanged:
		return c.contracts.ReverseResolver, nil
	default:
		return common.Address{}, fmt.Errorf("unknown event kind %q", kind)
	}
}

func decodeLog(kind model.EventKind, log types.Log) model.Event {
	event := model.Event{
		Kind:  kind,
		Order: model.EventOrderKey{BlockNumber: log.BlockNumber},
	}

	txIndex, err := safe.Uint32(log.TxIndex)
	if err != nil {
		return event
	}
	logIndex, err := safe.Uint32(log.Index)
	if err != nil {
		return event
	}
	event.Order.TransactionIndex = txIndex
	event.Order.LogIndex = logIndex

	if len(log.Topics) != 2 {
		return event
	}
	event.Node = log.Topics[1].Hex()

	values, err := contractsABI.Unpack(string(kind), log.Data)
	if err != nil || len(values) != 1 {
		return event
	}

	switch kind {
	case model.AddrChanged:
		addr, ok := values[0].(common.Address)
		if !ok {
			return event
		}
		if addr != (common.Address{}) {
			event.Value = addr.Hex()
		}
	case model.NameChanged:
		name, ok := values[0].(string)
		if !ok {
			return event
		}
		event.Value = name
	default:
		return event
	}

	event.Decoded = true
	return event
}
