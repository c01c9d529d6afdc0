package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispatch_operation_duration_seconds",
		Help:    "Duration of timed service operations.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"op", "outcome"})

	RouteStops = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_route_stops",
		Help:    "Number of clients in generated worker routes.",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250},
	})

	ClientUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_client_updates_total",
		Help: "Client updates by outcome.",
	}, []string{"outcome"})

	ZoneAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_zone_assignments_total",
		Help: "Zone assignments by outcome.",
	}, []string{"outcome"})

	DistanceCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_distance_cache_lookups_total",
		Help: "Distance cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
