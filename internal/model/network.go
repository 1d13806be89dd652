package model

import "fmt"

type Network string

var (
	Mainnet Network = "mainnet"
	Goerli  Network = "goerli"
)

// StartBlock returns the height at which the resolver contracts were deployed.
func (n Network) StartBlock() (uint64, error) {
	switch n {
	case Mainnet:
		return 14724819, nil
	case Goerli:
		return 7590847, nil
	default:
		return 0, fmt.Errorf("unknown network %q", n)
	}
}

// NetworkFromChainID maps an EIP-155 chain id to a supported network.
func NetworkFromChainID(id uint64) (Network, error) {
	switch id {
	case 1:
		return Mainnet, nil
	case 5:
		return Goerli, nil
	default:
		return "", fmt.Errorf("unsupported chain id %d", id)
	}
}
