// Package model defines domain models for name binding ingestion and resolution.
package model

// EventOrderKey totally orders events within a ledger.
type EventOrderKey struct {
	BlockNumber      uint64 `json:"blockNumber"`
	TransactionIndex uint32 `json:"transactionIndex"`
	LogIndex         uint32 `json:"logIndex"`
}

// After reports whether k is strictly newer than other.
func (k EventOrderKey) After(other EventOrderKey) bool {
	if k.BlockNumber != other.BlockNumber {
		return k.BlockNumber > other.BlockNumber
	}
	if k.TransactionIndex != other.TransactionIndex {
		return k.TransactionIndex > other.TransactionIndex
	}
	return k.LogIndex > other.LogIndex
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, with or
// after other.
func (k EventOrderKey) Compare(other EventOrderKey) int {
	switch {
	case k.After(other):
		return 1
	case other.After(k):
		return -1
	default:
		return 0
	}
}
