// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AdviceRequestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advice_requests_completed_total",
			Help: "Total number of advice requests answered successfully",
		},
		[]string{"advice_level"},
	)

	AdviceRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advice_requests_failed_total",
			Help: "Total number of advice requests that ended in an error",
		},
		[]string{"error_code"},
	)

	AdviceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advice_request_duration_seconds",
			Help:    "End-to-end duration of advice requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"outcome"},
	)

	AdviceRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advice_requests_active",
			Help: "Number of advice requests currently in flight",
		},
	)

	UpstreamAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_attempts_total",
			Help: "Outbound generateContent attempts by result",
		},
		[]string{"result"},
	)

	UpstreamBackoff = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upstream_backoff_seconds",
			Help:    "Backoff waits between generateContent attempts",
			Buckets: []float64{1, 2, 4, 8, 16},
		},
	)
)
