package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	redisStoreRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "redis_store",
		Name:      "operations_total",
		Help:      "Count of record store operations.",
	}, []string{"operation", "namespace", "status"})
	redisStoreRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "redis_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of record store operations.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "namespace", "status"})
)

// RedisStore tracks metrics for Redis record store operations.
type RedisStore struct{}

// NewRedisStore creates a RedisStore metrics collector.
func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

// Observe records duration and status of a store operation.
func (m RedisStore) Observe(operation, ns string, err error, started time.Time) {
	status := statusLabel(err)
	ns = orUnknown(ns)
	redisStoreRequestsTotal.WithLabelValues(operation, ns, status).Inc()
	redisStoreRequestDuration.WithLabelValues(operation, ns, status).Observe(time.Since(started).Seconds())
}
