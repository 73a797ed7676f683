// Package metrics holds the Prometheus collectors shared by the service.
// Collectors register with the default registry through promauto and are
// exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts namespaced cache hits
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calories_cache_hits_total",
			Help: "Total number of namespaced cache hits",
		},
		[]string{"namespace"},
	)

	// CacheMisses counts namespaced cache misses
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calories_cache_misses_total",
			Help: "Total number of namespaced cache misses",
		},
		[]string{"namespace"},
	)

	// CacheInvalidations counts bulk namespace invalidations
	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calories_cache_invalidations_total",
			Help: "Total number of namespace invalidations",
		},
		[]string{"namespace"},
	)

	// LookupRequests counts calorie service lookups by outcome
	LookupRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calories_lookup_requests_total",
			Help: "Total number of calorie service lookups",
		},
		[]string{"outcome"}, // "ok", "not_found", "malformed", "failed"
	)

	// LookupDuration tracks calorie service latency
	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "calories_lookup_duration_seconds",
			Help:    "Calorie service request duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	// HTTPRequests counts served requests by route and status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calories_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)
)
