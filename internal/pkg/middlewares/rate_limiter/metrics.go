package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateLimitExceededTotal counts 429 answers. route is the mux template, never the raw path.
var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "parcel_service",
		Subsystem: "http",
		Name:      "rate_limited_requests_total",
		Help:      "Requests answered with 429 by the per-client token bucket",
	},
	[]string{"method", "route"},
)
