package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memoria_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memoria_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5, 30},
		},
		[]string{"method", "path"},
	)

	// Codec metrics
	MemoriesEncoded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "memoria_memories_encoded_total",
			Help: "Total memories encoded into share links",
		},
	)

	TokenBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "memoria_token_bytes",
			Help:    "Length of generated share tokens",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
	)

	DecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memoria_decode_failures_total",
			Help: "Share links that failed to decode",
		},
		[]string{"kind"}, // transport, text, structure
	)

	// Gate metrics
	UnlockAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memoria_unlock_attempts_total",
			Help: "Unlock attempts on private memories",
		},
		[]string{"outcome"}, // "granted" or "denied"
	)

	// Suggestion metrics
	Suggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memoria_suggestions_total",
			Help: "Message suggestion requests",
		},
		[]string{"result"}, // "generated", "fallback", "busy"
	)
)
