// Package metrics provides Prometheus metrics for the ShiftSync matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service registers.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Matching metrics.
	autofillRequests  *prometheus.CounterVec
	autofillDuration  prometheus.Histogram
	autofillPoolSize  prometheus.Histogram
	autofillUnderfill prometheus.Counter
	invitationsTotal  prometheus.Counter

	// Payment simulation metrics.
	paymentsSimulated prometheus.Counter
	paymentReplays    prometheus.Counter

	// Notification pipeline metrics.
	notificationsEnqueued  prometheus.Counter
	notificationsDelivered prometheus.Counter
	notificationsDropped   prometheus.Counter
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	workerCount            prometheus.Gauge
	workerErrors           prometheus.Counter
	deliveryLatency        prometheus.Histogram

	// Store metrics.
	storeQueryLatency prometheus.Histogram
	storeWriteLatency prometheus.Histogram
	totalShifts       prometheus.Gauge
	totalProfiles     prometheus.Gauge
	totalAssignments  prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager on a custom registry, so the default Go collectors
// never leak into /healthz output.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shiftsync",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat collector registration
	auto := promauto.With(m.registry)

	m.autofillRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "autofill_requests_total",
			Help:      "Auto-fill invocations by outcome (ok, empty, invalid, not_found, error)",
		},
		[]string{"outcome"},
	)

	m.autofillDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "autofill_duration_milliseconds",
		Help:      "End-to-end auto-fill duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.autofillPoolSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "autofill_candidate_pool_size",
		Help:      "Candidates fetched per auto-fill before skill filtering",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	m.autofillUnderfill = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "autofill_underfill_total",
		Help:      "Auto-fill calls that invited fewer candidates than requested",
	})

	m.invitationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "invitations_created_total",
		Help:      "Invitation records created by auto-fill",
	})

	m.paymentsSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "payments",
		Name:      "simulated_total",
		Help:      "Simulated payment captures",
	})

	m.paymentReplays = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "payments",
		Name:      "idempotent_replays_total",
		Help:      "Payment requests answered from the idempotency cache",
	})

	m.notificationsEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "enqueued_total",
		Help:      "Invitation notifications enqueued",
	})

	m.notificationsDelivered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "delivered_total",
		Help:      "Invitation notifications delivered",
	})

	m.notificationsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "dropped_total",
		Help:      "Invitation notifications dropped on queue backpressure",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "queue_size",
		Help:      "Current notification queue depth",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "queue_capacity",
		Help:      "Notification queue capacity",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "worker_count",
		Help:      "Notification workers running",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "worker_errors_total",
		Help:      "Notification delivery errors",
	})

	m.deliveryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "delivery_latency_milliseconds",
		Help:      "Notification delivery latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "query_latency_milliseconds",
		Help:      "Store read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "write_latency_milliseconds",
		Help:      "Store write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.totalShifts = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "shifts_total",
		Help:      "Shifts currently stored",
	})

	m.totalProfiles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "profiles_total",
		Help:      "Talent profiles currently stored",
	})

	m.totalAssignments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "assignments_total",
		Help:      "Assignment records currently stored",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "HTTP error responses by endpoint and error type",
		},
		[]string{"endpoint", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current goroutine count",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry exposes the custom registry for the /healthz handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers on the global manager.

func RecordAutofillRequest(outcome string) {
	globalManager.autofillRequests.WithLabelValues(outcome).Inc()
}

func RecordAutofillDuration(ms float64) {
	globalManager.autofillDuration.Observe(ms)
}

func RecordAutofillPoolSize(n int) {
	globalManager.autofillPoolSize.Observe(float64(n))
}

func RecordAutofillUnderfill() {
	globalManager.autofillUnderfill.Inc()
}

func RecordInvitations(n int) {
	globalManager.invitationsTotal.Add(float64(n))
}

func RecordPaymentSimulated() {
	globalManager.paymentsSimulated.Inc()
}

func RecordPaymentReplay() {
	globalManager.paymentReplays.Inc()
}

func RecordNotificationEnqueued() {
	globalManager.notificationsEnqueued.Inc()
}

func RecordNotificationDelivered() {
	globalManager.notificationsDelivered.Inc()
}

func RecordNotificationDropped() {
	globalManager.notificationsDropped.Inc()
}

func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

func RecordDeliveryLatency(ms float64) {
	globalManager.deliveryLatency.Observe(ms)
}

func RecordStoreQueryLatency(ms float64) {
	globalManager.storeQueryLatency.Observe(ms)
}

func RecordStoreWriteLatency(ms float64) {
	globalManager.storeWriteLatency.Observe(ms)
}

func UpdateTotalShifts(n int) {
	globalManager.totalShifts.Set(float64(n))
}

func UpdateTotalProfiles(n int) {
	globalManager.totalProfiles.Set(float64(n))
}

func UpdateTotalAssignments(n int) {
	globalManager.totalAssignments.Set(float64(n))
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

func RecordHTTPError(endpoint, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, errorType).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}
