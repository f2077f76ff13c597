package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"status", "route"})
	HttpRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	SettingsOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settings_operations_total",
		Help: "Theme settings operations by kind (update, preset, reset)",
	}, []string{"op"})
	GateDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gate_decisions_total",
		Help: "Route gate outcomes (redirect, maintenance)",
	}, []string{"action"})
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created by payment method and status",
	}, []string{"method", "status"})
	ChatTokens = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chat_tokens",
		Help:    "Approximate tokens per chat reply",
		Buckets: prometheus.LinearBuckets(0, 50, 20),
	}, []string{"route"})
)
