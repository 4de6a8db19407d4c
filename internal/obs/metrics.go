package obs

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider call outcomes used as metric label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics tracks application metrics on a dedicated Prometheus registry so
// tests can construct isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	requests         prometheus.Counter
	cacheHits        prometheus.Counter
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	requestDuration  prometheus.Histogram
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "events",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "events",
			Name:      "cache_hits_total",
			Help:      "Total number of search cache hits",
		}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "events",
			Name:      "provider_requests_total",
			Help:      "Number of provider searches by outcome",
		}, []string{"provider", "status"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "events",
			Name:      "provider_duration_seconds",
			Help:      "Time spent in provider searches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "events",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving API requests",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.cacheHits,
		m.providerRequests,
		m.providerDuration,
		m.requestDuration,
	)
	return m
}

// IncRequests increments the API request counter.
func (m *Metrics) IncRequests() {
	m.requests.Inc()
}

// IncCacheHits increments the cache hit counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHits.Inc()
}

// ObserveProvider records one provider search outcome and its duration.
func (m *Metrics) ObserveProvider(provider, status string, d time.Duration) {
	m.providerRequests.WithLabelValues(provider, status).Inc()
	m.providerDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveRequest records one API request duration.
func (m *Metrics) ObserveRequest(d time.Duration) {
	m.requestDuration.Observe(d.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}
