package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolverRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "requests_total",
		Help:      "Count of resolution requests.",
	}, []string{"kind", "refresh", "status"})
	resolverRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "request_duration_seconds",
		Help:      "Duration of resolution requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "refresh", "status"})
)

// Resolver tracks metrics for the resolution service.
type Resolver struct{}

// NewResolver creates a Resolver metrics collector.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ObserveResolve records a single resolution outcome and duration.
func (m Resolver) ObserveResolve(kind string, refresh bool, err error, started time.Time) {
	status := statusLabel(err)
	r := strconv.FormatBool(refresh)
	resolverRequestsTotal.WithLabelValues(kind, r, status).Inc()
	resolverRequestDuration.WithLabelValues(kind, r, status).Observe(time.Since(started).Seconds())
}
