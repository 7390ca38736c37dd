// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
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

	// Upstream YouTube API metrics
	YouTubeAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_api_requests_total",
			Help: "Total number of YouTube Data API requests",
		},
		[]string{"endpoint", "status"},
	)

	// Extraction metrics
	CommentsFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_fetched_total",
			Help: "Total number of comment records fetched across all runs",
		},
	)

	CommentPagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comment_pages_total",
			Help: "Total number of comment thread pages fetched",
		},
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "Duration of comment extraction runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)
