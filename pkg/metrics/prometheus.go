// Package metrics provides Prometheus metrics for the sherrin draft service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the draft service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Draft flow metrics
	picksRecorded   prometheus.Counter
	picksRejected   prometheus.Counter
	undosApplied    prometheus.Counter
	snapshotResets  prometheus.Counter
	snapshotImports prometheus.Counter

	// Valuation pipeline metrics
	evaluateDuration prometheus.Histogram
	boardSize        prometheus.Gauge
	candidatePool    prometheus.Gauge
	currentPick      prometheus.Gauge

	// Feed metrics
	feedPolls          prometheus.Counter
	feedPollErrors     prometheus.Counter
	feedEventsApplied  prometheus.Counter
	feedEventsDuplicate prometheus.Counter

	// Pick queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec
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
		namespace:        "sherrin",
		subsystem:        "draft",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.picksRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "picks_recorded_total",
		Help:      "Total number of draft picks applied to the snapshot",
	})

	m.picksRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "picks_rejected_total",
		Help:      "Total number of pick requests ignored as no-ops (already drafted, unknown id)",
	})

	m.undosApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undos_applied_total",
		Help:      "Total number of draft events removed via undo",
	})

	m.snapshotResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_resets_total",
		Help:      "Total number of full draft resets",
	})

	m.snapshotImports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_imports_total",
		Help:      "Total number of snapshot imports",
	})

	m.evaluateDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluate_duration_milliseconds",
		Help:      "Histogram of full valuation pipeline duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.boardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_size",
		Help:      "Number of available (undrafted) candidates on the board",
	})

	m.candidatePool = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidate_pool_size",
		Help:      "Total number of loaded candidates",
	})

	m.currentPick = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_pick",
		Help:      "Next overall pick number",
	})

	m.feedPolls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_polls_total",
		Help:      "Total number of live feed poll attempts",
	})

	m.feedPollErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_poll_errors_total",
		Help:      "Total number of failed live feed polls",
	})

	m.feedEventsApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_events_applied_total",
		Help:      "Total number of externally sourced picks applied",
	})

	m.feedEventsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_events_duplicate_total",
		Help:      "Total number of externally sourced picks dropped as duplicates",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pick_queue_size",
		Help:      "Current number of queued pick events",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pick_queue_capacity",
		Help:      "Configured pick queue capacity",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pick_queue_enqueue_errors_total",
		Help:      "Total number of rejected enqueue attempts",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total errors by component and error type",
	}, []string{"component", "error_type"})
}

// RecordPick increments the applied-picks counter.
func RecordPick() {
	globalManager.picksRecorded.Inc()
}

// RecordPickRejected increments the no-op pick counter.
func RecordPickRejected() {
	globalManager.picksRejected.Inc()
}

// RecordUndo adds the number of undone events to the undo counter.
func RecordUndo(n int) {
	globalManager.undosApplied.Add(float64(n))
}

// RecordReset increments the reset counter.
func RecordReset() {
	globalManager.snapshotResets.Inc()
}

// RecordSnapshotImport increments the snapshot import counter.
func RecordSnapshotImport() {
	globalManager.snapshotImports.Inc()
}

// RecordEvaluateDuration observes a full pipeline evaluation duration.
func RecordEvaluateDuration(latencyMs float64) {
	globalManager.evaluateDuration.Observe(latencyMs)
}

// UpdateBoardSize sets the available-candidate gauge.
func UpdateBoardSize(size int) {
	globalManager.boardSize.Set(float64(size))
}

// UpdateCandidatePool sets the loaded-candidate gauge.
func UpdateCandidatePool(size int) {
	globalManager.candidatePool.Set(float64(size))
}

// UpdateCurrentPick sets the next overall pick gauge.
func UpdateCurrentPick(pick int) {
	globalManager.currentPick.Set(float64(pick))
}

// RecordFeedPoll increments the feed poll counter.
func RecordFeedPoll() {
	globalManager.feedPolls.Inc()
}

// RecordFeedPollError increments the feed poll error counter.
func RecordFeedPollError() {
	globalManager.feedPollErrors.Inc()
}

// RecordFeedEventApplied increments the applied external pick counter.
func RecordFeedEventApplied() {
	globalManager.feedEventsApplied.Inc()
}

// RecordFeedEventDuplicate increments the duplicate external pick counter.
func RecordFeedEventDuplicate() {
	globalManager.feedEventsDuplicate.Inc()
}

// UpdateQueueSize sets the pick queue size gauge.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the pick queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError increments the rejected enqueue counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
