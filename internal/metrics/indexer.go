package metrics

import (
	"time"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_batch_total",
		Help:      "Count of block range batches processed.",
	}, []string{"network", "status"})

	indexerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a block range batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_batch_blocks",
		Help:      "Number of blocks covered per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"network"})

	indexerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "events_total",
		Help:      "Count of resolver events seen, by outcome.",
	}, []string{"network", "kind", "outcome"})

	indexerBlocksReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "block_notifications_total",
		Help:      "Count of new block notifications received.",
	}, []string{"network"})

	indexerCheckpoint = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "checkpoint_height",
		Help:      "Last fully processed block height.",
	}, []string{"network"})

	indexerHead = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "head_height",
		Help:      "Latest block height reported by the ledger.",
	}, []string{"network"})
)

// Indexer tracks metrics for the event ingestion engine.
type Indexer struct {
	network model.Network
}

// NewIndexer constructs an Indexer metrics collector.
func NewIndexer(network model.Network) *Indexer {
	return &Indexer{network: model.Network(orUnknown(string(network)))}
}

// ObserveProcessBatch records processing of a block range.
func (m Indexer) ObserveProcessBatch(err error, blocks uint64, started time.Time) {
	status := statusLabel(err)
	indexerProcessBatchTotal.WithLabelValues(string(m.network), status).Inc()
	indexerProcessBatchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	indexerProcessBatchSize.WithLabelValues(string(m.network)).Observe(float64(blocks))
}

// ObserveEvents records applied and skipped events of one kind.
func (m Indexer) ObserveEvents(kind model.EventKind, applied, skipped int) {
	indexerEventsTotal.WithLabelValues(string(m.network), string(kind), "applied").Add(float64(applied))
	indexerEventsTotal.WithLabelValues(string(m.network), string(kind), "skipped").Add(float64(skipped))
}

// ObserveBlock records a new block notification.
func (m Indexer) ObserveBlock(height uint64) {
	indexerBlocksReceivedTotal.WithLabelValues(string(m.network)).Inc()
	m.SetHead(height)
}

// SetCheckpoint updates the checkpoint gauge.
func (m Indexer) SetCheckpoint(height uint64) {
	indexerCheckpoint.WithLabelValues(string(m.network)).Set(float64(height))
}

// SetHead updates the head gauge.
func (m Indexer) SetHead(height uint64) {
	indexerHead.WithLabelValues(string(m.network)).Set(float64(height))
}
