// Package metrics exposes Prometheus collectors for the collector job and the
// stats API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// collectorRuns counts collector invocations by terminal outcome.
	collectorRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlist_pulse_collector_runs_total",
		Help: "Collector runs by terminal outcome (ingested, already_ingested, failed).",
	}, []string{"outcome"})

	// youtubeRequests tracks YouTube Data API calls by endpoint and status.
	youtubeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "playlist_pulse_youtube_requests_total",
		Help: "YouTube Data API requests by endpoint and HTTP status.",
	}, []string{"endpoint", "status"})

	// youtubeRequestDuration tracks YouTube Data API call latency.
	youtubeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "playlist_pulse_youtube_request_duration_seconds",
		Help:    "YouTube Data API request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// httpRequestDuration tracks stats API request latency.
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "playlist_pulse_http_request_duration_seconds",
		Help:    "Stats API request duration by method, path and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// RecordRunOutcome counts one collector run with the given outcome label.
func RecordRunOutcome(outcome string) {
	collectorRuns.WithLabelValues(outcome).Inc()
}

// ObserveYouTubeRequest records one YouTube API call.
func ObserveYouTubeRequest(endpoint, status string, elapsed time.Duration) {
	youtubeRequests.WithLabelValues(endpoint, status).Inc()
	youtubeRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Middleware returns gin middleware that records request durations.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
