package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Authentication attempts by action and result",
		},
		[]string{"action", "result"}, // action: register, login, logout, validate
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Emails stored by kind",
		},
		[]string{"kind"}, // kind: user, auto_reply
	)

	TwoFactorCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "two_factor_codes_total",
			Help: "Two-factor codes issued and verification outcomes",
		},
		[]string{"result"}, // result: issued, verified, rejected
	)

	SlowQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_slow_queries_total",
			Help: "Queries slower than the configured threshold",
		},
		[]string{"command"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementAuthAttempt(action, result string) {
	AuthAttempts.WithLabelValues(action, result).Inc()
}

func IncrementEmailSent(kind string) {
	EmailsSent.WithLabelValues(kind).Inc()
}

func IncrementTwoFactor(result string) {
	TwoFactorCodes.WithLabelValues(result).Inc()
}

func IncrementSlowQuery(command string) {
	SlowQueries.WithLabelValues(command).Inc()
}

func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}
