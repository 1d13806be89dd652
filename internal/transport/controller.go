// Package transport exposes the resolution service over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultBatchConcurrency = 10
	maxBatchSize            = 1000
	maxBodyBytes            = 1 << 20
)

// Controller serves the resolution API.
type Controller struct {
	resolver         Resolver
	status           StatusReporter
	metrics          Metrics
	metricsHandler   http.Handler
	history          EventHistory
	batchConcurrency int
	logger           *zap.Logger
}

// Options tunes optional parts of the controller.
type Options struct {
	// BatchConcurrency bounds the items of one batch request resolved at once.
	BatchConcurrency int
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
	// History enables the archived event routes when set.
	History EventHistory
}

// NewController returns a new controller.
func NewController(resolver Resolver, status StatusReporter, metrics Metrics, opts Options, logger *zap.Logger) (*Controller, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if status == nil {
		return nil, errors.New("status reporter is required")
	}
	if metrics == nil {
		return nil, errors.New("http metrics is required")
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = defaultBatchConcurrency
	}
	return &Controller{
		resolver:         resolver,
		status:           status,
		metrics:          metrics,
		metricsHandler:   opts.MetricsHandler,
		history:          opts.History,
		batchConcurrency: opts.BatchConcurrency,
		logger:           logger.Named("http"),
	}, nil
}

// NewRouter returns a router with every API route registered.
func (c *Controller) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(c.instrument)

	r.HandleFunc("/health-check", c.HandleHealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/status", c.HandleStatus).Methods(http.MethodGet)

	// Batch routes are registered first so "batch" is never taken as a path value.
	r.HandleFunc("/address/batch", c.HandleAddressBatch).Methods(http.MethodPost)
	r.HandleFunc("/address/{address}", c.HandleAddress).Methods(http.MethodGet)
	r.HandleFunc("/name/batch", c.HandleNameBatch).Methods(http.MethodPost)
	r.HandleFunc("/name/{name}", c.HandleName).Methods(http.MethodGet)

	if c.history != nil {
		r.HandleFunc("/address/{address}/history", c.HandleAddressHistory).Methods(http.MethodGet)
		r.HandleFunc("/name/{name}/history", c.HandleNameHistory).Methods(http.MethodGet)
	}

	if c.metricsHandler != nil {
		r.Handle("/metrics", c.metricsHandler).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, failure{Message: "Not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, failure{Message: "Method not allowed"})
	})

	return r
}

type success struct {
	Success bool `json:"success"`
	Result  any  `json:"result,omitempty"`
}

type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func (c *Controller) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := ""
		if current := mux.CurrentRoute(r); current != nil {
			route, _ = current.GetPathTemplate()
		}
		c.metrics.ObserveRequest(route, rec.code, started)
	})
}

func (c *Controller) writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, success{Success: true, Result: result})
}

// writeError renders err as a JSON failure. Only UserError messages reach the client.
func (c *Controller) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ue, ok := asUserError(err); ok {
		c.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, ue.Status, failure{Message: ue.Message})
		return
	}
	c.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, failure{Message: unexpectedErrorMessage})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func forceRefresh(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "1"
}
