// Package metrics exposes report pipeline metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/erp/salesperf/internal/domain/report"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Config holds configuration for the Collector.
type Config struct {
	// Namespace is the prefix for all metrics.
	// Default: "salesperf"
	Namespace string

	// Subsystem is placed between namespace and metric name.
	// Default: "" (no subsystem)
	Subsystem string

	// DurationBuckets are the histogram buckets for run and request durations.
	// Default: prometheus.DefBuckets
	DurationBuckets []float64

	// IncludeRuntime registers the Go runtime and process collectors.
	IncludeRuntime bool
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Namespace:       "salesperf",
		DurationBuckets: prometheus.DefBuckets,
	}
}

// Collector records report runs, skipped references and HTTP traffic.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	runsTotal           *prometheus.CounterVec
	runDurationSeconds  prometheus.Histogram
	skippedTotal        *prometheus.CounterVec
	warningsTotal       *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpDurationSeconds *prometheus.HistogramVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector(config Config) *Collector {
	if config.Namespace == "" {
		config.Namespace = "salesperf"
	}
	if len(config.DurationBuckets) == 0 {
		config.DurationBuckets = prometheus.DefBuckets
	}

	// A private registry keeps tests and multiple collectors independent
	c := &Collector{
		config:   config,
		registry: prometheus.NewRegistry(),
	}
	c.initMetrics()
	return c
}

func (c *Collector) initMetrics() {
	c.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      "report_runs_total",
			Help:      "Total number of seller performance report runs.",
		},
		[]string{"status"},
	)

	c.runDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      "report_run_duration_seconds",
			Help:      "Duration of seller performance report runs in seconds.",
			Buckets:   c.config.DurationBuckets,
		},
	)

	c.skippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      "report_skipped_total",
			Help:      "Purchase records and items skipped because of unknown references.",
		},
		[]string{"unit"},
	)

	c.warningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      "report_warnings_total",
			Help:      "Warnings emitted during aggregation by kind.",
		},
		[]string{"kind"},
	)

	c.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served.",
		},
		[]string{"method", "route", "status"},
	)

	c.httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: c.config.Namespace,
			Subsystem: c.config.Subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   c.config.DurationBuckets,
		},
		[]string{"method", "route"},
	)

	c.registry.MustRegister(
		c.runsTotal,
		c.runDurationSeconds,
		c.skippedTotal,
		c.warningsTotal,
		c.httpRequestsTotal,
		c.httpDurationSeconds,
	)
	if c.config.IncludeRuntime {
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// ObserveRun records the outcome and duration of a report run.
func (c *Collector) ObserveRun(status string, duration time.Duration) {
	c.runsTotal.WithLabelValues(status).Inc()
	c.runDurationSeconds.Observe(duration.Seconds())
}

// ObserveSkipped adds the skipped record and item counts of a run.
func (c *Collector) ObserveSkipped(records, items int) {
	c.skippedTotal.WithLabelValues("record").Add(float64(records))
	c.skippedTotal.WithLabelValues("item").Add(float64(items))
}

// Warn implements report.WarningSink.
func (c *Collector) Warn(w report.Warning) {
	c.warningsTotal.WithLabelValues(string(w.Kind)).Inc()
}

// GinMiddleware records request counts and latency per route.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDurationSeconds.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the HTTP handler serving the registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: false,
	})
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Gather collects all metrics from the registry.
func (c *Collector) Gather() ([]*dto.MetricFamily, error) {
	return c.registry.Gather()
}
