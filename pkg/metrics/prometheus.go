// Package metrics provides Prometheus metrics for the scout analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scout service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Engine
	analysesTotal   prometheus.Counter
	analysisLatency prometheus.Histogram
	fitResults      prometheus.Counter

	// Role catalog
	catalogRoles        prometheus.Gauge
	catalogVersion      prometheus.Gauge
	catalogReplacements prometheus.Counter
	roleReloads         *prometheus.CounterVec
	roleStoreErrors     *prometheus.CounterVec

	// Roster and batch analysis
	rosterSize   prometheus.Gauge
	workerCount  prometheus.Gauge
	batchLatency prometheus.Histogram
	batchSize    prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scout",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
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
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	// A single analysis runs in microseconds.
	engineBuckets := prometheus.ExponentialBuckets(0.005, 4, 8)

	m.analysesTotal = auto.NewCounter(m.counterOpts(
		"analyses_total", "Total number of player analyses computed"))
	m.analysisLatency = auto.NewHistogram(m.histogramOpts(
		"analysis_latency_milliseconds", "Latency of a single player analysis in milliseconds", engineBuckets))
	m.fitResults = auto.NewCounter(m.counterOpts(
		"fit_results_total", "Total number of role fit results produced"))

	m.catalogRoles = auto.NewGauge(m.gaugeOpts(
		"catalog_roles", "Number of roles in the active catalog"))
	m.catalogVersion = auto.NewGauge(m.gaugeOpts(
		"catalog_version", "Version of the active role catalog"))
	m.catalogReplacements = auto.NewCounter(m.counterOpts(
		"catalog_replacements_total", "Total number of role catalog swaps"))
	m.roleReloads = auto.NewCounterVec(m.counterOpts(
		"role_reloads_total", "Role catalog reloads by trigger"), []string{"source"})
	m.roleStoreErrors = auto.NewCounterVec(m.counterOpts(
		"role_store_errors_total", "Role store failures by operation"), []string{"operation"})

	m.rosterSize = auto.NewGauge(m.gaugeOpts(
		"roster_size", "Number of players in the roster"))
	m.workerCount = auto.NewGauge(m.gaugeOpts(
		"worker_count", "Number of batch analysis workers"))
	m.batchLatency = auto.NewHistogram(m.histogramOpts(
		"batch_latency_milliseconds", "Latency of a batch analysis in milliseconds", m.histogramBuckets))
	m.batchSize = auto.NewHistogram(m.histogramOpts(
		"batch_size", "Number of snapshots per batch analysis", prometheus.ExponentialBuckets(1, 2, 10)))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts(
		"errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordAnalysis counts one analysis with its latency and number of fit results.
func (m *Manager) RecordAnalysis(latencyMs float64, fits int) {
	m.analysesTotal.Inc()
	m.analysisLatency.Observe(latencyMs)
	m.fitResults.Add(float64(fits))
}

// RecordCatalogReplace records a catalog swap.
func (m *Manager) RecordCatalogReplace(roles int, version uint64) {
	m.catalogReplacements.Inc()
	m.catalogRoles.Set(float64(roles))
	m.catalogVersion.Set(float64(version))
}

// RecordRoleReload counts a reload triggered by source (api, watch, reset).
func (m *Manager) RecordRoleReload(source string) {
	m.roleReloads.WithLabelValues(source).Inc()
}

// RecordRoleStoreError counts a failed role store operation.
func (m *Manager) RecordRoleStoreError(operation string) {
	m.roleStoreErrors.WithLabelValues(operation).Inc()
}

// RecordBatch records one batch analysis.
func (m *Manager) RecordBatch(size int, latencyMs float64) {
	m.batchSize.Observe(float64(size))
	m.batchLatency.Observe(latencyMs)
}

// RecordAnalysis counts one analysis on the global manager.
func RecordAnalysis(latencyMs float64, fits int) {
	globalManager.RecordAnalysis(latencyMs, fits)
}

// RecordCatalogReplace records a catalog swap on the global manager.
func RecordCatalogReplace(roles int, version uint64) {
	globalManager.RecordCatalogReplace(roles, version)
}

// RecordRoleReload counts a catalog reload by trigger.
func RecordRoleReload(source string) {
	globalManager.RecordRoleReload(source)
}

// RecordRoleStoreError counts a failed role store operation.
func RecordRoleStoreError(operation string) {
	globalManager.RecordRoleStoreError(operation)
}

// RecordBatch records one batch analysis.
func RecordBatch(size int, latencyMs float64) {
	globalManager.RecordBatch(size, latencyMs)
}

// UpdateRosterSize sets the number of stored players.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// UpdateWorkerCount sets the number of batch analysis workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
