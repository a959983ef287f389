// Package metrics provides Prometheus metrics for the matchd
// recommendation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the matchd service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	matchRequests    *prometheus.CounterVec
	matchLatency     *prometheus.HistogramVec
	candidatesScored prometheus.Counter
	emptyPools       *prometheus.CounterVec
	duplicateChecks  prometheus.Counter

	// Catalog metrics
	catalogSize *prometheus.GaugeVec

	// Batch pool metrics
	batchWorkerCount prometheus.Gauge
	batchQueueDepth  prometheus.Gauge
	batchJobLatency  prometheus.Histogram

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchd",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_requests_total",
		Help:      "Total number of match requests by mode",
	}, []string{"mode"})

	m.matchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_latency_milliseconds",
		Help:      "End-to-end match request latency in milliseconds by mode",
		Buckets:   m.histogramBuckets,
	}, []string{"mode"})

	m.candidatesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_scored_total",
		Help:      "Total number of candidate entities scored",
	})

	m.emptyPools = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "empty_pools_total",
		Help:      "Match requests that found an empty candidate pool, by mode",
	}, []string{"mode"})

	m.duplicateChecks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_checks_total",
		Help:      "Total number of duplicate-entity checks performed",
	})

	m.catalogSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_size",
		Help:      "Number of entities per catalog collection",
	}, []string{"collection"})

	m.batchWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_worker_count",
		Help:      "Number of workers in the batch scoring pool",
	})

	m.batchQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_depth",
		Help:      "Pending jobs in the batch scoring pool",
	})

	m.batchJobLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_job_latency_milliseconds",
		Help:      "Per-job scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method, and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordMatchRequest increments the match request counter for a mode.
func RecordMatchRequest(mode string) {
	globalManager.matchRequests.WithLabelValues(mode).Inc()
}

// RecordMatchLatency observes end-to-end request latency for a mode.
func RecordMatchLatency(mode string, latencyMs float64) {
	globalManager.matchLatency.WithLabelValues(mode).Observe(latencyMs)
}

// RecordCandidatesScored adds to the scored-candidates counter.
func RecordCandidatesScored(n int) {
	globalManager.candidatesScored.Add(float64(n))
}

// RecordEmptyPool increments the empty candidate pool counter for a mode.
func RecordEmptyPool(mode string) {
	globalManager.emptyPools.WithLabelValues(mode).Inc()
}

// RecordDuplicateCheck increments the duplicate check counter.
func RecordDuplicateCheck() {
	globalManager.duplicateChecks.Inc()
}

// UpdateCatalogSize sets the entity count gauge for a collection.
func UpdateCatalogSize(collection string, size int) {
	globalManager.catalogSize.WithLabelValues(collection).Set(float64(size))
}

// UpdateBatchWorkerCount sets the batch pool worker gauge.
func UpdateBatchWorkerCount(count int) {
	globalManager.batchWorkerCount.Set(float64(count))
}

// UpdateBatchQueueDepth sets the pending-job gauge.
func UpdateBatchQueueDepth(depth int) {
	globalManager.batchQueueDepth.Set(float64(depth))
}

// RecordBatchJobLatency observes one job's scoring latency.
func RecordBatchJobLatency(latencyMs float64) {
	globalManager.batchJobLatency.Observe(latencyMs)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
