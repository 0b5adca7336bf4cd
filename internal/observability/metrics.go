package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	WebSocketConnectionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	BroadcastEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_events_total",
			Help: "Total number of events fanned out to live channels",
		},
		[]string{"service", "event"},
	)

	BroadcastDropsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_drops_total",
			Help: "Events dropped because a live channel could not keep up",
		},
		[]string{"service"},
	)

	StorageErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"service", "operation"},
	)
)
