package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Share validation outcome labels
const (
	ShareOutcomeOK       = "ok"
	ShareOutcomeNotFound = "not_found"
	ShareOutcomeExpired  = "expired"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courseflow",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "courseflow",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ShareValidations counts share token validations by outcome. A spike
	// in not_found is the signature of token guessing.
	ShareValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "courseflow",
			Name:      "share_validations_total",
			Help:      "Share token validation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// RateLimitedRequests counts requests rejected by the public share
	// endpoint rate limiter.
	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "courseflow",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)
)
