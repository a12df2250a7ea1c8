// Package metrics exposes Prometheus collectors for form submissions, record
// service round trips, and HTTP requests served by the web front-end.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-hardship/pkg/form"
	"github.com/goliatone/go-hardship/pkg/records"
)

// Config configures the collectors.
type Config struct {
	Namespace   string
	ConstLabels prometheus.Labels
	Buckets     []float64
	// Registry receives the collectors. A fresh registry with the Go and
	// process collectors is created when nil.
	Registry *prometheus.Registry
}

// Option configures Config.
type Option func(*Config)

// WithNamespace sets the metric namespace (default "hardship").
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		if namespace != "" {
			c.Namespace = namespace
		}
	}
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets overrides the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		if len(buckets) > 0 {
			c.Buckets = buckets
		}
	}
}

// WithRegistry registers collectors on registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Collector records application metrics. It implements form.Observer and
// records.Observer.
type Collector struct {
	registry        *prometheus.Registry
	submissions     *prometheus.CounterVec
	serviceRequests *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

var (
	_ form.Observer    = (*Collector)(nil)
	_ records.Observer = (*Collector)(nil)
)

// New creates and registers the collectors.
func New(options ...Option) *Collector {
	cfg := Config{
		Namespace: "hardship",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(cfg.Registry)
	return &Collector{
		registry: cfg.Registry,
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "submissions_total",
			Help:        "Form submissions by mode and outcome.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"mode", "outcome"}),
		serviceRequests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "service_request_duration_seconds",
			Help:        "Record service round trip duration by operation and status code.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"operation", "status"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests served by route pattern and status code.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"route", "method", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration by route pattern.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"route"}),
	}
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// SubmissionFinished implements form.Observer.
func (c *Collector) SubmissionFinished(mode form.Mode, status form.Status) {
	c.submissions.WithLabelValues(mode.String(), status.Kind.String()).Inc()
}

// ObserveRequest implements records.Observer. status 0 is reported as "error".
func (c *Collector) ObserveRequest(operation string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.serviceRequests.WithLabelValues(operation, label).Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
