// Package metrics provides Prometheus metrics for the league history build,
// its analytics and the HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector registered by this package.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Build pipeline
	rowsLoaded    *prometheus.CounterVec
	buildFailures *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec

	// League size after a successful build
	owners         prometheus.Gauge
	seasons        prometheus.Gauge
	gameLogEntries prometheus.Gauge

	// Analytics
	analyticsDuration *prometheus.HistogramVec
	noHistory         prometheus.Counter

	// Exports
	exports *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton behind the package-level recorders

// customRegistry keeps the default Go/process collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // served by the health handler

func init() { //nolint:gochecknoinits // global manager must exist before any recorder is called
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "knox",
		subsystem:        "league",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Input rows accepted by the stores, by table",
		ConstLabels: m.constLabels,
	}, []string{"table"})

	m.buildFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "build_failures_total",
		Help:        "Aborted league builds, by pipeline stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.buildDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "build_stage_duration_milliseconds",
		Help:        "Duration of each league build stage in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.owners = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "owners",
		Help:        "Owners known to the registry",
		ConstLabels: m.constLabels,
	})

	m.seasons = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "seasons",
		Help:        "Seasons present in the reconciled history",
		ConstLabels: m.constLabels,
	})

	m.gameLogEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "game_log_entries",
		Help:        "Entries in the owner-indexed game log",
		ConstLabels: m.constLabels,
	})

	m.analyticsDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analytics_duration_milliseconds",
		Help:        "Analytics computation time in milliseconds, by operation",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.noHistory = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "no_history_total",
		Help:        "Head-to-head queries for owner pairs that never met",
		ConstLabels: m.constLabels,
	})

	m.exports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "exports_total",
		Help:        "Result table exports, by sink and status",
		ConstLabels: m.constLabels,
	}, []string{"sink", "status"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "HTTP requests by endpoint, method and status code",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// RecordRowsLoaded adds n accepted rows for a table (mapping, season_records, matchups).
func RecordRowsLoaded(table string, n int) {
	globalManager.rowsLoaded.WithLabelValues(table).Add(float64(n))
}

// RecordBuildFailure counts an aborted build at the given stage.
func RecordBuildFailure(stage string) {
	globalManager.buildFailures.WithLabelValues(stage).Inc()
}

// ObserveBuildStage records how long a build stage took.
func ObserveBuildStage(stage string, d time.Duration) {
	globalManager.buildDuration.WithLabelValues(stage).Observe(millis(d))
}

// SetLeagueSize publishes the size of the reconciled history.
func SetLeagueSize(owners, seasons, entries int) {
	globalManager.owners.Set(float64(owners))
	globalManager.seasons.Set(float64(seasons))
	globalManager.gameLogEntries.Set(float64(entries))
}

// ObserveAnalytics records the duration of one analytics operation.
func ObserveAnalytics(operation string, d time.Duration) {
	globalManager.analyticsDuration.WithLabelValues(operation).Observe(millis(d))
}

// RecordNoHistory counts a head-to-head query without games.
func RecordNoHistory() {
	globalManager.noHistory.Inc()
}

// RecordExport counts one export attempt; status is "ok" or "error".
func RecordExport(sink, status string) {
	globalManager.exports.WithLabelValues(sink, status).Inc()
}

// RecordHTTPRequest increments the request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the registry the package-level recorders write to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
