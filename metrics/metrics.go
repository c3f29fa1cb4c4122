package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector provides application metrics collection
type Collector struct {
	registry *prometheus.Registry

	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Load Metrics
	LoadDuration *prometheus.HistogramVec
	LoadErrors   *prometheus.CounterVec
	TableRows    *prometheus.GaugeVec

	// Aggregation Metrics
	AggregationDuration *prometheus.HistogramVec
}

// NewCollector creates a collector on its own registry, so several can
// coexist in one process.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		APIRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		APIRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"route"},
		),

		LoadDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dataset_load_duration_seconds",
				Help:      "Duration of a full dataset load in seconds by source",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"source"},
		),

		LoadErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dataset_load_errors_total",
				Help:      "Total number of failed dataset loads by source",
			},
			[]string{"source"},
		),

		TableRows: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_rows",
				Help:      "Rows held in memory per table",
			},
			[]string{"table"},
		),

		AggregationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_duration_seconds",
				Help:      "Duration of statistics aggregation in seconds by operation",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
			},
			[]string{"operation"},
		),
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// TimeAggregation starts a timer for one aggregation operation.
func (c *Collector) TimeAggregation(operation string) *Timer {
	return c.NewTimer(c.AggregationDuration.WithLabelValues(operation))
}

// TimeLoad starts a timer for a dataset load from source.
func (c *Collector) TimeLoad(source string) *Timer {
	return c.NewTimer(c.LoadDuration.WithLabelValues(source))
}

// RecordLoadError increments the failed load counter
func (c *Collector) RecordLoadError(source string) {
	c.LoadErrors.WithLabelValues(source).Inc()
}

// RecordAPIRequest increments API request counter
func (c *Collector) RecordAPIRequest(route, method, status string) {
	c.APIRequestsTotal.WithLabelValues(route, method, status).Inc()
}

// SetTableRows publishes per-table row counts.
func (c *Collector) SetTableRows(counts map[string]int) {
	for table, n := range counts {
		c.TableRows.WithLabelValues(table).Set(float64(n))
	}
}
