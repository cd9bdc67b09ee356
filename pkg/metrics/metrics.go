package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_hub_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_hub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ListingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_hub_listing_cache_hits_total",
			Help: "Total number of video listing cache hits",
		},
	)

	ListingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_hub_listing_cache_misses_total",
			Help: "Total number of video listing cache misses",
		},
	)

	// MediaStoreBreakerState is 0 closed, 1 half-open, 2 open.
	MediaStoreBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "video_hub_media_store_breaker_state",
			Help: "Circuit breaker state for the media store",
		},
		[]string{"name"},
	)

	MediaStoreRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_hub_media_store_requests_total",
			Help: "Media store calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	VideoEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_hub_video_events_published_total",
			Help: "Video events written to Kafka by type and result",
		},
		[]string{"event_type", "result"},
	)
)
