// Package ledger reads resolver events and contract state from an Ethereum node.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/clock"
	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
)

const defaultPollInterval = 12 * time.Second

// Contracts holds the addresses the client talks to.
type Contracts struct {
	Registry        common.Address
	PublicResolver  common.Address
	ReverseResolver common.Address
}

// Validate reports a missing contract address.
func (c Contracts) Validate() error {
	zero := common.Address{}
	switch {
	case c.Registry == zero:
		return errors.New("registry address is required")
	case c.PublicResolver == zero:
		return errors.New("public resolver address is required")
	case c.ReverseResolver == zero:
		return errors.New("reverse resolver address is required")
	}
	return nil
}

// Options tunes request pacing.
type Options struct {
	// RPS caps outgoing requests per second; zero disables the limit.
	RPS int
	// PollInterval is used when the transport cannot push new heads.
	PollInterval time.Duration
}

// Client wraps an ETHClient with metrics instrumentation and rate limiting.
type Client struct {
	eth          ETHClient
	contracts    Contracts
	metrics      Metrics
	limiter      ratelimit.Limiter
	pollInterval time.Duration
	sleep        clock.Sleeper
	logger       *zap.Logger
}

// Dial connects to the node at rawURL. Websocket URLs enable head
// subscriptions, http URLs fall back to polling.
func Dial(ctx context.Context, rawURL string) (*ethclient.Client, error) {
	if rawURL == "" {
		return nil, errors.New("rpc url is required")
	}
	client, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return client, nil
}

// NewClient constructs an instrumented ledger client.
func NewClient(eth ETHClient, contracts Contracts, metrics Metrics, opts Options, logger *zap.Logger) (*Client, error) {
	if eth == nil {
		return nil, errors.New("eth client is required")
	}
	if metrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if err := contracts.Validate(); err != nil {
		return nil, err
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		limiter = ratelimit.New(opts.RPS)
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	return &Client{
		eth:          eth,
		contracts:    contracts,
		metrics:      metrics,
		limiter:      limiter,
		pollInterval: poll,
		sleep:        clock.SleepWithContext,
		logger:       logger.Named("ledger"),
	}, nil
}

// CurrentHeight returns the latest block number.
func (c *Client) CurrentHeight(ctx context.Context) (height uint64, err error) {
	c.limiter.Take()
	started := time.Now()
	defer func() {
		c.metrics.Observe("block_number", err, started)
	}()
	return c.eth.BlockNumber(ctx)
}

// DetectNetwork maps the node's chain id to a supported network.
func (c *Client) DetectNetwork(ctx context.Context) (model.Network, error) {
	c.limiter.Take()
	started := time.Now()
	id, err := c.eth.ChainID(ctx)
	c.metrics.Observe("chain_id", err, started)
	if err != nil {
		return "", fmt.Errorf("get chain id: %w", err)
	}
	if !id.IsUint64() {
		return "", fmt.Errorf("unsupported chain id %s", id)
	}
	return model.NetworkFromChainID(id.Uint64())
}
