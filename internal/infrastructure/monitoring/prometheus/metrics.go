// Package prometheus registers and exposes the service's Prometheus metrics.
// Each instance carries its own registry so tests never collide on the
// default global one.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alloyfrontier"

// Default histogram buckets.
var (
	defaultHTTPDurationBuckets      = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	defaultOptimizerDurationBuckets = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
	defaultExportDurationBuckets    = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10}
)

// Metrics holds every metric the service records.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  prometheus.Gauge

	// Optimizer calls
	OptimizerCallsTotal   *prometheus.CounterVec
	OptimizerCallDuration prometheus.Histogram

	// Solution store
	SolutionSetSize prometheus.Gauge
	SelectionsTotal *prometheus.CounterVec

	// Report exports
	ExportsTotal   *prometheus.CounterVec
	ExportDuration prometheus.Histogram
}

// NewMetrics builds a Metrics set on a fresh registry, with the standard
// process and Go runtime collectors attached.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   defaultHTTPDurationBuckets,
		}, []string{"method", "path"}),
		HTTPActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "In-flight HTTP requests.",
		}),

		OptimizerCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimizer_calls_total",
			Help:      "Optimizer invocations by outcome (success, no_convergence, error).",
		}, []string{"outcome"}),
		OptimizerCallDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimizer_call_duration_seconds",
			Help:      "End-to-end optimizer call latency.",
			Buckets:   defaultOptimizerDurationBuckets,
		}),

		SolutionSetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "solution_set_size",
			Help:      "Number of candidates in the current solution set.",
		}),
		SelectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Selection attempts by outcome (ok, out_of_range).",
		}, []string{"outcome"}),

		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Report export attempts by outcome (success, region_missing, error).",
		}, []string{"outcome"}),
		ExportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Report export latency.",
			Buckets:   defaultExportDurationBuckets,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPActiveRequests,
		m.OptimizerCallsTotal,
		m.OptimizerCallDuration,
		m.SolutionSetSize,
		m.SelectionsTotal,
		m.ExportsTotal,
		m.ExportDuration,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOptimizerCall records one optimizer invocation.
func (m *Metrics) RecordOptimizerCall(outcome string, duration time.Duration) {
	m.OptimizerCallsTotal.WithLabelValues(outcome).Inc()
	m.OptimizerCallDuration.Observe(duration.Seconds())
}

// RecordSelection records one selection attempt.
func (m *Metrics) RecordSelection(outcome string) {
	m.SelectionsTotal.WithLabelValues(outcome).Inc()
}

// RecordExport records one report export attempt.
func (m *Metrics) RecordExport(outcome string, duration time.Duration) {
	m.ExportsTotal.WithLabelValues(outcome).Inc()
	m.ExportDuration.Observe(duration.Seconds())
}

// Outcome label values.
const (
	OutcomeSuccess       = "success"
	OutcomeNoConvergence = "no_convergence"
	OutcomeError         = "error"
	OutcomeOK            = "ok"
	OutcomeOutOfRange    = "out_of_range"
	OutcomeRegionMissing = "region_missing"
)
