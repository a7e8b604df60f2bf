package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagebook_http_requests_total",
		Help: "Total number of HTTP requests handled, by method, route and status code.",
	},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "garagebook_http_request_duration_seconds",
		Help:    "Latency of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route"},
	)

	MaintenanceCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garagebook_maintenance_created_total",
		Help: "Total number of maintenance requests successfully created.",
	})

	MaintenanceTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagebook_maintenance_transitions_total",
		Help: "Total number of maintenance status transitions, by target status.",
	},
		[]string{"status"},
	)

	MissedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garagebook_missed_requests_total",
		Help: "Total number of overdue requests marked as missed by the scheduler.",
	})

	CapacityRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagebook_capacity_rejections_total",
		Help: "Total number of operations rejected for lack of garage capacity.",
	},
		[]string{"kind"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagebook_events_published_total",
		Help: "Total number of domain events handed to a sink.",
	},
		[]string{"sink"},
	)

	EventsPublishFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagebook_events_publish_failed_total",
		Help: "Total number of domain events that could not be delivered.",
	},
		[]string{"sink"},
	)

	GeocodeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garagebook_geocode_requests_total",
		Help: "Total number of geocoding lookups, by provider and result.",
	},
		[]string{"provider", "result"},
	)
)

// 容量拒绝类型
const (
	RejectGarageFull = "garage_full"
	RejectDailyLimit = "daily_limit"
)

// RegisterClientGauge 注册 WebSocket 在线客户端数量
func RegisterClientGauge(count func() int) prometheus.GaugeFunc {
	return promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "garagebook_ws_clients",
		Help: "Current number of connected websocket clients.",
	}, func() float64 {
		return float64(count())
	})
}
