package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

const headBuffer = 16

// SubscribeNewBlocks streams new block heights until ctx is done or the
// subscription fails, then closes the channel. Transports without push
// notifications are polled every PollInterval instead.
func (c *Client) SubscribeNewBlocks(ctx context.Context) (<-chan uint64, error) {
	headers := make(chan *types.Header, headBuffer)
	sub, err := c.eth.SubscribeNewHead(ctx, headers)
	if errors.Is(err, rpc.ErrNotificationsUnsupported) {
		c.logger.Info("transport has no notifications, polling for new blocks",
			zap.Duration("interval", c.pollInterval))
		return c.pollHeads(ctx), nil
	}
	if err != nil {
		return nil, fmt.Errorf("subscribe new heads: %w", err)
	}

	out := make(chan uint64)
	go func() {
		defer close(out)
		defer sub.Unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				if err != nil {
					c.logger.Error("new heads subscription failed", zap.Error(err))
				}
				return
			case header := <-headers:
				if header == nil || header.Number == nil {
					continue
				}
				select {
				case out <- header.Number.Uint64():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (c *Client) pollHeads(ctx context.Context) <-chan uint64 {
	out := make(chan uint64)
	go func() {
		defer close(out)

		var last uint64
		for {
			height, err := c.CurrentHeight(ctx)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return
				}
				c.logger.Warn("poll block number failed", zap.Error(err))
			case height > last:
				last = height
				select {
				case out <- height:
				case <-ctx.Done():
					return
				}
			}

			if err := c.sleep(ctx, c.pollInterval); err != nil {
				return
			}
		}
	}()
	return out
}
