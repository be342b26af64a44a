package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the processing metrics exposed on /metrics in serve mode.
type Metrics struct {
	registry *prometheus.Registry

	stageSeconds  *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	requests      prometheus.Counter
	failures      prometheus.Counter
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "image_processor_stage_seconds",
			Help:    "Elapsed time per processing stage",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"stage"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "image_processor_stage_failures_total",
			Help: "Failed processing stages",
		}, []string{"stage"}),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_processor_requests_total",
			Help: "Total processing requests",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_processor_request_failures_total",
			Help: "Processing requests that failed outright",
		}),
	}

	m.registry.MustRegister(m.stageSeconds, m.stageFailures, m.requests, m.failures)
	return m
}

// ObserveStage records one stage duration.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageSeconds.WithLabelValues(stage).Observe(seconds)
}

// StageFailed counts a failed stage.
func (m *Metrics) StageFailed(stage string) {
	if m == nil {
		return
	}
	m.stageFailures.WithLabelValues(stage).Inc()
}

// RequestStarted counts an incoming request.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.requests.Inc()
}

// RequestFailed counts a request that failed outright.
func (m *Metrics) RequestFailed() {
	if m == nil {
		return
	}
	m.failures.Inc()
}

// Handler returns the scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
