package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	gatherer prometheus.Gatherer

	rpcRequestsTotal   *prometheus.CounterVec
	rpcRequestDuration *prometheus.HistogramVec
	reportDuration     *prometheus.HistogramVec
	cacheRequestsTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
// Use prometheus.NewRegistry() in tests to avoid duplicate registrations
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		rpcRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthtrack_rpc_requests_total",
				Help: "Total number of gRPC requests",
			},
			[]string{"method", "code"},
		),
		rpcRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wealthtrack_rpc_request_duration_seconds",
				Help:    "gRPC request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wealthtrack_report_build_duration_seconds",
				Help:    "Time spent loading balance changes and computing a report",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		cacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wealthtrack_report_cache_requests_total",
				Help: "Report cache lookups by result",
			},
			[]string{"kind", "result"},
		),
	}
}

// RecordRPC records one gRPC call
func (m *Metrics) RecordRPC(method, code string, duration time.Duration) {
	m.rpcRequestsTotal.WithLabelValues(method, code).Inc()
	m.rpcRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordReport records the time spent building a report of the given kind
func (m *Metrics) RecordReport(kind string, duration time.Duration) {
	m.reportDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordCache records a report cache lookup
func (m *Metrics) RecordCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequestsTotal.WithLabelValues(kind, result).Inc()
}

// Handler exposes the registered metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
