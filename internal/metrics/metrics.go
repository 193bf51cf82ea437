// Package metrics defines Prometheus metrics for folio-admin.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_admin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_admin_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_admin_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_admin_audit_queue_depth",
			Help: "Current audit queue depth",
		},
	)

	AuditDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_admin_audit_drops_total",
			Help: "Audit entries dropped after exhausting the retry budget or on a full queue",
		},
	)

	SettingConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_admin_setting_conflicts_total",
			Help: "Setting writes rejected by the optimistic-concurrency check",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_admin_websocket_connections",
			Help: "Active audit feed WebSocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		AuditQueueDepth, AuditDropsTotal,
		SettingConflictsTotal, WSConnections,
	)
}
