package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GalleryImagesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_images_skipped_total",
			Help: "Gallery images skipped inside batch operations, by error kind",
		},
		[]string{"kind"},
	)

	CounterCASRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "counter_cas_retries_total",
			Help: "Lost compare-and-swap rounds on capped counters",
		},
		[]string{"counter"},
	)

	CounterConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "counter_conflicts_total",
			Help: "Increments that exhausted the retry budget",
		},
		[]string{"counter"},
	)
)
