package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_validations_total",
			Help: "Total number of contact checks by check and outcome",
		},
		[]string{"check", "outcome"},
	)

	EmailFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "email_validation_fallbacks_total",
			Help: "Email checks accepted on format alone because the lookup failed",
		},
	)

	LeadSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of lead submissions by outcome",
		},
		[]string{"outcome"},
	)

	RemoteCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "databowl_request_duration_seconds",
			Help:    "Duration of DataBowl API calls in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Inbound HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)
)

// ObserveRemoteCall records one DataBowl round trip.
func ObserveRemoteCall(operation, outcome string, started time.Time) {
	RemoteCallDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
}
