// Package metrics provides Prometheus metrics for the telerisk engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	riskBuckets      []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Assessment metrics
	assessments        *prometheus.CounterVec
	assessmentLatency  prometheus.Histogram
	overallRisk        prometheus.Histogram
	riskCategories     *prometheus.CounterVec
	sectorAssessments  *prometheus.CounterVec
	scorerFailures     *prometheus.CounterVec
	validationFailures prometheus.Counter

	// Batch pipeline metrics
	batchRequests   prometheus.Counter
	batchDuplicates prometheus.Counter

	queueCapacity     prometheus.Gauge
	queueSize         prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueEnqueueError *prometheus.CounterVec

	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "telerisk",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		riskBuckets:      []float64{0.2, 0.4, 0.6, 0.8, 1.0},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.assessments = auto.NewCounterVec(
		m.counterOpts("assessments_total", "Project assessments by outcome (ok, invalid)"),
		[]string{"outcome"},
	)
	m.assessmentLatency = auto.NewHistogram(
		m.histogramOpts("assessment_latency_milliseconds", "End-to-end project assessment latency in milliseconds", m.histogramBuckets),
	)
	m.overallRisk = auto.NewHistogram(
		m.histogramOpts("overall_risk", "Distribution of overall project risk scores", m.riskBuckets),
	)
	m.riskCategories = auto.NewCounterVec(
		m.counterOpts("risk_category_total", "Assessments by resulting risk category"),
		[]string{"category"},
	)
	m.sectorAssessments = auto.NewCounterVec(
		m.counterOpts("sector_assessments_total", "Sector assessments by sector and outcome (ok, fallback)"),
		[]string{"sector", "outcome"},
	)
	m.scorerFailures = auto.NewCounterVec(
		m.counterOpts("scorer_failures_total", "Sector scorer failures replaced by a fallback assessment"),
		[]string{"sector"},
	)
	m.validationFailures = auto.NewCounter(
		m.counterOpts("validation_failures_total", "Projects rejected by validation before scoring"),
	)

	m.batchRequests = auto.NewCounter(
		m.counterOpts("batch_requests_total", "Projects submitted through batch assessment"),
	)
	m.batchDuplicates = auto.NewCounter(
		m.counterOpts("batch_duplicates_total", "Batch items skipped because their project_id repeated"),
	)

	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum job queue capacity"))
	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued jobs"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue utilization ratio (size / capacity)"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Jobs enqueued"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Jobs dequeued"))
	m.queueEnqueueError = auto.NewCounterVec(
		m.counterOpts("queue_enqueue_errors_total", "Rejected enqueue attempts by reason"),
		[]string{"reason"},
	)

	m.workerActive = auto.NewGauge(m.gaugeOpts("worker_active_count", "Number of running assessment workers"))
	m.workerProcessingLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Worker job processing latency in milliseconds", m.histogramBuckets),
	)
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Jobs that finished with an error"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpErrors = auto.NewCounterVec(
		m.counterOpts("http_errors_total", "HTTP error responses by endpoint and error type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordAssessment records one finished project assessment.
func RecordAssessment(latencyMs, overallRisk float64, category string) {
	globalManager.assessments.WithLabelValues("ok").Inc()
	globalManager.assessmentLatency.Observe(latencyMs)
	globalManager.overallRisk.Observe(overallRisk)
	globalManager.riskCategories.WithLabelValues(category).Inc()
}

// RecordValidationFailure counts a project rejected before scoring.
func RecordValidationFailure() {
	globalManager.assessments.WithLabelValues("invalid").Inc()
	globalManager.validationFailures.Inc()
}

// RecordSectorAssessment counts a successful sector assessment.
func RecordSectorAssessment(sector string) {
	globalManager.sectorAssessments.WithLabelValues(sector, "ok").Inc()
}

// RecordScorerFailure counts a sector scorer failure that fell back.
func RecordScorerFailure(sector string) {
	globalManager.sectorAssessments.WithLabelValues(sector, "fallback").Inc()
	globalManager.scorerFailures.WithLabelValues(sector).Inc()
}

// RecordBatchRequest counts one item submitted through a batch.
func RecordBatchRequest() { globalManager.batchRequests.Inc() }

// RecordBatchDuplicate counts one duplicate batch item.
func RecordBatchDuplicate() { globalManager.batchDuplicates.Inc() }

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the current queue depth and utilization.
func UpdateQueueSize(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueError.WithLabelValues(reason).Inc()
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
