package indexer

import "time"

const (
	// DefaultBatchSize bounds the block range of a single log query.
	DefaultBatchSize uint64 = 500
	// DefaultBlockTimeout is the longest silence tolerated between new blocks.
	DefaultBlockTimeout = 30 * time.Second
)
