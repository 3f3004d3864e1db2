package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"parcel-service/internal/http/middleware"
	"parcel-service/internal/metrics"
)

// workflowMetrics groups the collectors registered once per process.
type workflowMetrics struct {
	RateLimitExceeded *prometheus.CounterVec
	GatewayDuration   *prometheus.HistogramVec
	Confirmations     *prometheus.CounterVec
	Assignments       *prometheus.CounterVec
	HTTP              middleware.HTTPMetrics
}

func provideMetrics() (workflowMetrics, error) {
	reg := prometheus.DefaultRegisterer
	var (
		out workflowMetrics
		err error
	)
	if out.RateLimitExceeded, err = register(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return workflowMetrics{}, err
	}
	if out.GatewayDuration, err = register(reg, "payment_gateway_request_duration_seconds", metrics.NewGatewayRequestDuration()); err != nil {
		return workflowMetrics{}, err
	}
	if out.Confirmations, err = register(reg, "payment_confirmations_total", metrics.NewPaymentConfirmationsTotal()); err != nil {
		return workflowMetrics{}, err
	}
	if out.Assignments, err = register(reg, "rider_assignments_total", metrics.NewRiderAssignmentsTotal()); err != nil {
		return workflowMetrics{}, err
	}
	if out.HTTP.Requests, err = register(reg, "http_requests_total", metrics.NewHTTPRequestsTotal()); err != nil {
		return workflowMetrics{}, err
	}
	if out.HTTP.Durations, err = register(reg, "http_request_duration_seconds", metrics.NewHTTPRequestDuration()); err != nil {
		return workflowMetrics{}, err
	}
	return out, nil
}

// register returns the already registered collector when one with the same descriptor exists.
func register[T prometheus.Collector](reg prometheus.Registerer, name string, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
