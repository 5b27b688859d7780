package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_retries_total",
			Help: "Total number of gateway calls that needed more than one attempt",
		},
		[]string{"service", "method", "code"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of gateway requests including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "code"},
	)

	ParcelEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_events_published_total",
			Help: "Parcel status change events sent to the broker",
		},
		[]string{"field", "result"},
	)
)
