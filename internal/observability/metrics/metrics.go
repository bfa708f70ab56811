package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupchat_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "groupchat_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	useCaseTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupchat_usecase_total",
		Help: "Use case executions by name and outcome",
	}, []string{"usecase", "outcome"})

	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "groupchat_ws_connections",
		Help: "Number of open realtime connections",
	})

	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupchat_events_total",
		Help: "Realtime events by type and delivery result",
	}, []string{"type", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveUseCase counts one use case execution. outcome is "ok" or an error kind.
func ObserveUseCase(name, outcome string) {
	useCaseTotal.WithLabelValues(name, outcome).Inc()
}

// ObserveEvent counts one realtime event delivery attempt.
func ObserveEvent(eventType, result string) {
	eventsTotal.WithLabelValues(eventType, result).Inc()
}

func IncrementConnections() {
	wsConnections.Inc()
}

func DecrementConnections() {
	wsConnections.Dec()
}

// GinMiddleware records every request under its route template so path
// parameters do not explode label cardinality.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
