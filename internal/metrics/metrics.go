package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels shared by the workflow counters.
const (
	OutcomeConfirmed        = "confirmed"
	OutcomeNotPaid          = "not_paid"
	OutcomeAlreadyConfirmed = "already_confirmed"
	OutcomeAssigned         = "assigned"
	OutcomeFailed           = "failed"
)

// NewRateLimitExceededTotal returns a counter of HTTP requests rejected by the rate limiter, by route scope
func NewRateLimitExceededTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	}, []string{"scope"})
}

// NewGatewayRequestDuration returns a histogram of payment gateway calls by operation and outcome
func NewGatewayRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_gateway_request_duration_seconds",
		Help:    "Duration of payment gateway calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})
}

// NewPaymentConfirmationsTotal returns a counter of confirmation attempts by outcome
func NewPaymentConfirmationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_confirmations_total",
		Help: "Total number of payment confirmation attempts by outcome",
	}, []string{"outcome"})
}

// NewRiderAssignmentsTotal returns a counter of assignment attempts by outcome
func NewRiderAssignmentsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rider_assignments_total",
		Help: "Total number of rider assignment attempts by outcome",
	}, []string{"outcome"})
}

// NewHTTPRequestsTotal returns a counter of served HTTP requests by method, route pattern and status
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration returns a histogram of HTTP request durations by method, route pattern and status
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
