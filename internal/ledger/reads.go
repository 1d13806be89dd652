package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/internal/namehash"
)

// ReadForward reads the address currently bound to name from its resolver.
// A missing resolver or a zero address yields a cleared binding.
func (c *Client) ReadForward(ctx context.Context, name string) (model.Binding, error) {
	node, err := namehash.Hash(name)
	if err != nil {
		return model.Binding{}, err
	}
	resolver, err := c.resolverOf(ctx, node)
	if err != nil {
		return model.Binding{}, err
	}
	if resolver == (common.Address{}) {
		return model.Cleared(), nil
	}

	values, err := c.callContract(ctx, "read_addr", resolver, "addr", node)
	if err != nil {
		return model.Binding{}, err
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return model.Binding{}, fmt.Errorf("unexpected addr result %T", values[0])
	}
	if addr == (common.Address{}) {
		return model.Cleared(), nil
	}
	return model.Present(addr.Hex()), nil
}

// ReadReverse reads the name currently claimed by addr from the reverse
// resolver. A missing resolver or an empty name yields a cleared binding.
func (c *Client) ReadReverse(ctx context.Context, addr common.Address) (model.Binding, error) {
	node, err := namehash.ReverseNode(addr)
	if err != nil {
		return model.Binding{}, err
	}
	resolver, err := c.resolverOf(ctx, node)
	if err != nil {
		return model.Binding{}, err
	}
	if resolver == (common.Address{}) {
		return model.Cleared(), nil
	}

	values, err := c.callContract(ctx, "read_name", resolver, "name", node)
	if err != nil {
		return model.Binding{}, err
	}
	name, ok := values[0].(string)
	if !ok {
		return model.Binding{}, fmt.Errorf("unexpected name result %T", values[0])
	}
	if name == "" {
		return model.Cleared(), nil
	}
	return model.Present(name), nil
}

func (c *Client) resolverOf(ctx context.Context, node string) (common.Address, error) {
	values, err := c.callContract(ctx, "read_resolver", c.contracts.Registry, "resolver", node)
	if err != nil {
		return common.Address{}, err
	}
	resolver, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected resolver result %T", values[0])
	}
	return resolver, nil
}

func (c *Client) callContract(ctx context.Context, operation string, to common.Address, method, node string) (values []interface{}, err error) {
	data, err := contractsABI.Pack(method, [32]byte(common.HexToHash(node)))
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	c.limiter.Take()
	started := time.Now()
	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	c.metrics.Observe(operation, err, started)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}

	values, err = contractsABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s from %s: %w", method, to.Hex(), err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unpack %s from %s: got %d values", method, to.Hex(), len(values))
	}
	return values, nil
}
