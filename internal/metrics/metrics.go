// Package metrics exposes Prometheus metrics for release lookups and page
// requests served by the HTML landing page.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the metrics set.
type Config struct {
	// Namespace is the metrics namespace (default: "quicklook_landing").
	Namespace string

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors. Default: a fresh registry with
	// Go runtime and process collectors.
	Registry *prometheus.Registry
}

// Option configures the metrics set.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the collectors
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	pageRequests  *prometheus.CounterVec
	pageDuration  *prometheus.HistogramVec
	releaseInfo   *prometheus.GaugeVec
}

// New creates and registers the metrics set.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "quicklook_landing",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		registry: cfg.Registry,

		fetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "release_fetch_total",
			Help:      "Latest-release lookups by outcome (ok, network, http_status, malformed)",
		}, []string{"outcome"}),

		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "release_fetch_duration_seconds",
			Help:      "Latest-release lookup duration in seconds",
			Buckets:   cfg.Buckets,
		}),

		pageRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),

		pageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"route"}),

		releaseInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "release_info",
			Help:      "Resolved release; value is 1 for the version being advertised",
		}, []string{"version", "installer"}),
	}
}

// ObserveFetch records one release lookup
func (m *Metrics) ObserveFetch(kind string, elapsed time.Duration) {
	m.fetchTotal.WithLabelValues(kind).Inc()
	m.fetchDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.pageRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.pageDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// SetRelease marks the advertised version and installer
func (m *Metrics) SetRelease(version, installer string) {
	m.releaseInfo.Reset()
	m.releaseInfo.WithLabelValues(version, installer).Set(1)
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
