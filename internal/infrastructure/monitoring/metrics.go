package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Shell metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Save store metrics
	StoreOps      *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec

	// Session metrics
	SessionsActive   prometheus.Gauge
	SessionsCreated  prometheus.Counter
	SessionsSaved    prometheus.Counter
	SessionsRestored prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for the JSON stats endpoint
type Snapshot struct {
	TotalRequests  int64   `json:"totalRequests"`
	TotalErrors    int64   `json:"totalErrors"`
	TotalCommands  int64   `json:"totalCommands"`
	FailedCommands int64   `json:"failedCommands"`
	ActiveSessions int64   `json:"activeSessions"`
	AvgLatencyMs   float64 `json:"avgLatencyMs"`
	UptimeSeconds  float64 `json:"uptimeSeconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector registered on its own registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith creates a metrics collector registered on reg.
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termquest_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termquest_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termquest_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termquest_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Shell metrics
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termquest_commands_total",
				Help: "Total number of executed shell commands",
			},
			[]string{"command", "status"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termquest_command_duration_seconds",
				Help:    "Shell command duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"command"},
		),

		// Save store metrics
		StoreOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termquest_store_operations_total",
				Help: "Total number of save store operations",
			},
			[]string{"operation", "status"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termquest_store_duration_seconds",
				Help:    "Save store operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termquest_sessions_active",
				Help: "Number of active game sessions",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termquest_sessions_created_total",
				Help: "Total number of game sessions created",
			},
		),
		SessionsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termquest_sessions_saved_total",
				Help: "Total number of sessions saved",
			},
		),
		SessionsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termquest_sessions_restored_total",
				Help: "Total number of sessions restored",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termquest_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termquest_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "termquest_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// ObserveCommand records one executed shell command.
func (m *Metrics) ObserveCommand(command, status string, d time.Duration) {
	m.CommandsTotal.WithLabelValues(command, status).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())

	m.mu.Lock()
	m.snapshot.TotalCommands++
	if status != "ok" {
		m.snapshot.FailedCommands++
	}
	m.mu.Unlock()
}

// RecordStoreOp records a save store operation
func (m *Metrics) RecordStoreOp(operation, status string, duration time.Duration) {
	m.StoreOps.WithLabelValues(operation, status).Inc()
	m.StoreDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetSessionsActive sets the number of active sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveSessions = int64(count)
	m.mu.Unlock()
}

// IncSessionsCreated increments the sessions created counter
func (m *Metrics) IncSessionsCreated() {
	m.SessionsCreated.Inc()
}

// IncSessionsSaved increments the sessions saved counter
func (m *Metrics) IncSessionsSaved() {
	m.SessionsSaved.Inc()
}

// IncSessionsRestored increments the sessions restored counter
func (m *Metrics) IncSessionsRestored() {
	m.SessionsRestored.Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
