package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Task Metrics
	TaskOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Total number of task operations",
		},
		[]string{"operation"}, // create, update, delete, start, pause, resume, complete
	)

	// Ranking Metrics
	RankOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_operations_total",
			Help: "Total number of ranking runs by strategy",
		},
		[]string{"strategy", "mode"},
	)

	// Heatmap Metrics
	HeatmapRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heatmap_requests_total",
			Help: "Total number of heatmap computations",
		},
		[]string{"kind", "cache"}, // kind: week/average, cache: hit/miss
	)

	// Focus Log Metrics
	FocusLogsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "focus_logs_total",
			Help: "Total number of focus intervals recorded",
		},
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/register
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "reason"},
	)
)

// Helper functions for tracking specific metrics

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackTaskOperation increments the task operation counter
func TrackTaskOperation(operation string) {
	TaskOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackRankOperation records one ranking run
func TrackRankOperation(strategy, mode string) {
	RankOperationsTotal.WithLabelValues(strategy, mode).Inc()
}

// TrackHeatmapRequest records one heatmap computation
func TrackHeatmapRequest(kind, cache string) {
	HeatmapRequestsTotal.WithLabelValues(kind, cache).Inc()
}

// TrackFocusLog counts a recorded focus interval
func TrackFocusLog() {
	FocusLogsTotal.Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackError increments the error counter by type
func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}
