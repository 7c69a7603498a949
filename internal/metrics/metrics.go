package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts handled requests by route and status class
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks handler latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "focus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal counts requests rejected by the auth rate limiter
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "focus_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		},
	)
)

// Auth metrics
var (
	// AuthAttemptsTotal counts login, register and logout outcomes
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_auth_attempts_total",
			Help: "Total authentication attempts by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)

// Write buffer metrics
var (
	// BufferPending tracks items waiting in the bbolt buffer
	BufferPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "focus_buffer_pending_items",
			Help: "Number of buffered writes waiting for replay",
		},
	)

	// BufferReplayTotal counts replay results by entity and outcome (ok/requeued/dropped)
	BufferReplayTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_buffer_replay_total",
			Help: "Buffered write replays by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)
)

// Outcome labels shared by the counters above.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeRequeued = "requeued"
	OutcomeDropped  = "dropped"
)
