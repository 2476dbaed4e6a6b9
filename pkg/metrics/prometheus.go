// Package metrics provides Prometheus metrics for the outreach assistant service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

var (
	scoreBuckets     = prometheus.LinearBuckets(10, 10, 10)                             //nolint:gochecknoglobals // fixed bucket layout
	recipientBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000}              //nolint:gochecknoglobals // fixed bucket layout
	gcPauseBuckets   = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // fixed bucket layout
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Assistant
	contentProcessed     prometheus.Counter
	processFailures      prometheus.Counter
	processLatency       prometheus.Histogram
	processInflight      prometheus.Gauge
	recipientsPerRequest prometheus.Histogram
	tagsSuggested        *prometheus.CounterVec
	matchesScored        prometheus.Counter
	matchScore           prometheus.Histogram
	draftsGenerated      *prometheus.CounterVec
	recommendations      prometheus.Counter
	fallbacks            *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "outreach",
		subsystem:        "assistant",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
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
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.metricPrefix + name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.contentProcessed = auto.NewCounter(m.counterOpts("content_processed_total",
		"Total number of content items run through the full outreach pipeline"))
	m.processFailures = auto.NewCounter(m.counterOpts("process_failures_total",
		"Total number of pipeline runs that returned an error"))
	m.processLatency = auto.NewHistogram(m.histogramOpts("process_latency_milliseconds",
		"Pipeline latency in milliseconds", m.histogramBuckets))
	m.processInflight = auto.NewGauge(m.gaugeOpts("process_inflight",
		"Pipeline runs currently executing"))
	m.recipientsPerRequest = auto.NewHistogram(m.histogramOpts("recipients_per_request",
		"Number of recipients evaluated per pipeline run", recipientBuckets))

	m.tagsSuggested = auto.NewCounterVec(m.counterOpts("tags_suggested_total",
		"Total number of suggested tags by category"), []string{"category"})
	m.matchesScored = auto.NewCounter(m.counterOpts("matches_scored_total",
		"Total number of recipient/content match scores computed"))
	m.matchScore = auto.NewHistogram(m.histogramOpts("match_score",
		"Distribution of match scores (0-100)", scoreBuckets))
	m.draftsGenerated = auto.NewCounterVec(m.counterOpts("drafts_generated_total",
		"Total number of drafted outreach messages by tone"), []string{"tone"})
	m.recommendations = auto.NewCounter(m.counterOpts("recommendations_total",
		"Total number of recipients that cleared the outreach threshold"))
	m.fallbacks = auto.NewCounterVec(m.counterOpts("fallbacks_total",
		"Total number of degraded results substituted after an internal failure"), []string{"component"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.histogramBuckets), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"Average GC pause time in milliseconds", gcPauseBuckets))
}

// RefreshInterval is how often gauge-style system metrics should be sampled.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// ObserveProcess records one finished pipeline run.
func (m *Manager) ObserveProcess(recipients int, latencyMs float64, err error) {
	if !m.enabled {
		return
	}
	m.recipientsPerRequest.Observe(float64(recipients))
	m.processLatency.Observe(latencyMs)
	if err != nil {
		m.processFailures.Inc()
		return
	}
	m.contentProcessed.Inc()
}

// AddInflight moves the in-flight pipeline gauge by delta.
func (m *Manager) AddInflight(delta float64) {
	if m.enabled {
		m.processInflight.Add(delta)
	}
}

// RecordTag counts one suggested tag.
func (m *Manager) RecordTag(category string) {
	if m.enabled {
		m.tagsSuggested.WithLabelValues(category).Inc()
	}
}

// RecordMatch counts one match and observes its score.
func (m *Manager) RecordMatch(score float64) {
	if m.enabled {
		m.matchesScored.Inc()
		m.matchScore.Observe(score)
	}
}

// RecordDraft counts one drafted message.
func (m *Manager) RecordDraft(tone string) {
	if m.enabled {
		m.draftsGenerated.WithLabelValues(tone).Inc()
	}
}

// RecordRecommendation counts one recipient that cleared the threshold.
func (m *Manager) RecordRecommendation() {
	if m.enabled {
		m.recommendations.Inc()
	}
}

// RecordFallback counts one degraded result for component.
func (m *Manager) RecordFallback(component string) {
	if m.enabled {
		m.fallbacks.WithLabelValues(component).Inc()
	}
}

// RecordHTTPRequest counts one HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordHTTPError counts a failed HTTP request by endpoint, type and severity.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string, latencyMs float64) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
		m.errorLatency.WithLabelValues("http", errorType).Observe(latencyMs)
	}
}

// UpdateSystem sets the process gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Package-level helpers backed by the global manager.

// ObserveProcess records one finished pipeline run.
func ObserveProcess(recipients int, latencyMs float64, err error) {
	globalManager.ObserveProcess(recipients, latencyMs, err)
}

// AddInflight moves the in-flight pipeline gauge.
func AddInflight(delta float64) { globalManager.AddInflight(delta) }

// RecordTag counts one suggested tag.
func RecordTag(category string) { globalManager.RecordTag(category) }

// RecordMatch counts one match score.
func RecordMatch(score float64) { globalManager.RecordMatch(score) }

// RecordDraft counts one drafted message.
func RecordDraft(tone string) { globalManager.RecordDraft(tone) }

// RecordRecommendation counts one recommendation.
func RecordRecommendation() { globalManager.RecordRecommendation() }

// RecordFallback counts one degraded result.
func RecordFallback(component string) { globalManager.RecordFallback(component) }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError counts one failed HTTP request.
func RecordHTTPError(endpoint, method, errorType, severity string, latencyMs float64) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity, latencyMs)
}

// UpdateSystem sets the process gauges.
func UpdateSystem(memoryBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memoryBytes, goroutines, avgGCPauseMs)
}

// RefreshInterval returns the configured sampling interval of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
