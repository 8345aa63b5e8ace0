// Package metrics provides Prometheus metrics for the swish series service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the swish service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Submission metrics
	submissionsTotal   prometheus.Counter
	submissionFailures prometheus.Counter

	// Store metrics
	storeAppends            prometheus.Counter
	storeAppendErrors       prometheus.Counter
	snapshotRebuildDuration prometheus.Histogram
	snapshotFanout          prometheus.Counter
	subscriberCount         prometheus.Gauge
	totalRecords            prometheus.Gauge

	// Sink metrics
	sinkSends           prometheus.Counter
	sinkTransportErrors prometheus.Counter
	sinkSendLatency     prometheus.Histogram

	// Voice metrics
	voiceSessionsStarted prometheus.Counter
	voiceSessionsDenied  prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "swish",
		subsystem:        "series",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.submissionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Total number of series submissions accepted",
	})

	m.submissionFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submission_failures_total",
		Help:      "Total number of series submissions that ended in the failure path",
	})

	m.storeAppends = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_appends_total",
		Help:      "Total number of records appended to the series store",
	})

	m.storeAppendErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_append_errors_total",
		Help:      "Total number of failed store writes",
	})

	m.snapshotRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuild_duration_milliseconds",
		Help:      "Histogram of full snapshot rebuild durations in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotFanout = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_fanout_total",
		Help:      "Total number of snapshots delivered to subscribers",
	})

	m.subscriberCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subscriber_count",
		Help:      "Current number of live snapshot subscribers",
	})

	m.totalRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_records",
		Help:      "Total number of series records in the store",
	})

	m.sinkSends = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_sends_total",
		Help:      "Total number of webhook mirror POSTs issued",
	})

	m.sinkTransportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_transport_errors_total",
		Help:      "Total number of webhook POSTs that failed at the transport level",
	})

	m.sinkSendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_send_latency_milliseconds",
		Help:      "Histogram of webhook POST latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.voiceSessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "voice_sessions_started_total",
		Help:      "Total number of recognition sessions started",
	})

	m.voiceSessionsDenied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "voice_sessions_denied_total",
		Help:      "Total number of recognition sessions rejected by permission denial",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request durations in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of HTTP error responses by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordSubmission increments the accepted-submission counter.
func RecordSubmission() {
	if globalManager.enabled {
		globalManager.submissionsTotal.Inc()
	}
}

// RecordSubmissionFailure increments the failed-submission counter.
func RecordSubmissionFailure() {
	if globalManager.enabled {
		globalManager.submissionFailures.Inc()
	}
}

// RecordStoreAppend increments the store append counter.
func RecordStoreAppend() {
	if globalManager.enabled {
		globalManager.storeAppends.Inc()
	}
}

// RecordStoreAppendError increments the failed store write counter.
func RecordStoreAppendError() {
	if globalManager.enabled {
		globalManager.storeAppendErrors.Inc()
	}
}

// RecordSnapshotRebuildDuration records a snapshot rebuild duration.
func RecordSnapshotRebuildDuration(latencyMs float64) {
	if globalManager.enabled {
		globalManager.snapshotRebuildDuration.Observe(latencyMs)
	}
}

// RecordSnapshotFanout increments the delivered-snapshot counter.
func RecordSnapshotFanout() {
	if globalManager.enabled {
		globalManager.snapshotFanout.Inc()
	}
}

// UpdateSubscriberCount sets the live subscriber gauge.
func UpdateSubscriberCount(count int) {
	if globalManager.enabled {
		globalManager.subscriberCount.Set(float64(count))
	}
}

// UpdateTotalRecords sets the stored record gauge.
func UpdateTotalRecords(count int) {
	if globalManager.enabled {
		globalManager.totalRecords.Set(float64(count))
	}
}

// RecordSinkSend increments the webhook POST counter.
func RecordSinkSend() {
	if globalManager.enabled {
		globalManager.sinkSends.Inc()
	}
}

// RecordSinkTransportError increments the webhook transport failure counter.
func RecordSinkTransportError() {
	if globalManager.enabled {
		globalManager.sinkTransportErrors.Inc()
	}
}

// RecordSinkSendLatency records a webhook POST latency.
func RecordSinkSendLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.sinkSendLatency.Observe(latencyMs)
	}
}

// RecordVoiceSessionStarted increments the recognition session counter.
func RecordVoiceSessionStarted() {
	if globalManager.enabled {
		globalManager.voiceSessionsStarted.Inc()
	}
}

// RecordVoiceSessionDenied increments the permission-denied counter.
func RecordVoiceSessionDenied() {
	if globalManager.enabled {
		globalManager.voiceSessionsDenied.Inc()
	}
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByEndpoint records an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// GetRegistry exposes the custom registry for the metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
