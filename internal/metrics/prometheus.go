// Package metrics provides Prometheus metrics for the archery scoring server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the server.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Scoring
	scoreUpdates        *prometheus.CounterVec
	archersImported     prometheus.Counter
	archersSkipped      prometheus.Counter
	standingsComputed   prometheus.Counter
	standingsLatency    prometheus.Histogram
	standingsExports    prometheus.Counter
	websocketClients    prometheus.Gauge
	websocketBroadcasts prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry()

func init() {
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "archery",
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

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method"},
	)

	m.scoreUpdates = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scores",
		Name:      "updates_total",
		Help:      "Score card changes by kind (set, cleared, bulk_cleared)",
	}, []string{"kind"})

	m.archersImported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "archers_imported_total",
		Help:      "Archers created from registration uploads",
	})

	m.archersSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "archers_skipped_total",
		Help:      "Registration rows skipped as duplicates",
	})

	m.standingsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "standings",
		Name:      "computed_total",
		Help:      "Standings computations",
	})

	m.standingsLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "standings",
		Name:      "compute_duration_seconds",
		Help:      "Time spent filtering, sorting and ranking a population",
		Buckets:   m.histogramBuckets,
	})

	m.standingsExports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "standings",
		Name:      "exports_total",
		Help:      "Spreadsheet exports written",
	})

	m.websocketClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "websocket",
		Name:      "clients",
		Help:      "Currently connected live standings clients",
	})

	m.websocketBroadcasts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "websocket",
		Name:      "broadcasts_total",
		Help:      "Messages broadcast to live clients",
	})
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route, method, statusCode string, d time.Duration) {
	globalManager.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Score update kinds.
const (
	ScoreSet         = "set"
	ScoreCleared     = "cleared"
	ScoreBulkCleared = "bulk_cleared"
)

// RecordScoreUpdate increments the score update counter for kind.
func RecordScoreUpdate(kind string) {
	globalManager.scoreUpdates.WithLabelValues(kind).Inc()
}

// RecordImport adds the outcome of a registration upload.
func RecordImport(imported, skipped int) {
	globalManager.archersImported.Add(float64(imported))
	globalManager.archersSkipped.Add(float64(skipped))
}

// RecordStandingsComputed records one standings computation.
func RecordStandingsComputed(d time.Duration) {
	globalManager.standingsComputed.Inc()
	globalManager.standingsLatency.Observe(d.Seconds())
}

// RecordExport increments the export counter.
func RecordExport() {
	globalManager.standingsExports.Inc()
}

// UpdateWebsocketClients sets the connected client gauge.
func UpdateWebsocketClients(n int) {
	globalManager.websocketClients.Set(float64(n))
}

// RecordBroadcast increments the broadcast counter.
func RecordBroadcast() {
	globalManager.websocketBroadcasts.Inc()
}

// GetRegistry returns the registry the global manager reports to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
