// Package metrics exposes wager ledger activity to Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chris/wager-escrow/pkg/escrow"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wager_escrow"

// Metrics records ledger operations, committed events and HTTP requests.
type Metrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	events     *prometheus.CounterVec
	moved      *prometheus.CounterVec
	requests   *prometheus.CounterVec
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by name and error kind (empty kind for success).",
		}, []string{"op", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Ledger operation latency, including the storage commit.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Committed wager events by name.",
		}, []string{"name"}),
		moved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "value_moved_total",
			Help:      "Units collected into or released from custody by successful operations.",
		}, []string{"op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}
	reg.MustRegister(m.operations, m.latency, m.events, m.moved, m.requests)
	return m
}

var _ escrow.Observer = (*Metrics)(nil)

// ObserveOperation implements escrow.Observer.
func (m *Metrics) ObserveOperation(ctx context.Context, op escrow.Operation) {
	m.operations.WithLabelValues(string(op.Name), string(op.Kind)).Inc()
	m.latency.WithLabelValues(string(op.Name)).Observe(op.Duration.Seconds())
	if op.Kind == escrow.KindNone && op.Amount > 0 {
		m.moved.WithLabelValues(string(op.Name)).Add(float64(op.Amount))
	}
}

// EventHook counts committed events. It is installed as a ledger commit hook.
func (m *Metrics) EventHook(ctx context.Context, events []models.Event) {
	for _, e := range events {
		m.events.WithLabelValues(string(e.Name)).Inc()
	}
}

// Middleware counts HTTP requests by method and status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
