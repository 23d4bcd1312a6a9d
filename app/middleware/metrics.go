package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// All collectors share one namespace so the API and the clustering
// pipeline show up together on the /metrics endpoint.
const metricsNamespace = "locallens"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, partitioned by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_inflight_requests",
			Help:      "HTTP requests currently being served",
		},
	)

	// ClusteringRunsTotal counts upload clustering runs by result
	// ("success" or "failure"). Incremented by the scheduler.
	ClusteringRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "clustering_runs_total",
			Help:      "Upload clustering runs, partitioned by result",
		},
		[]string{"result"},
	)

	// ClusteringRunDuration tracks the wall clock time of one full
	// parse, aggregate, and cluster pipeline run.
	ClusteringRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "clustering_run_duration_seconds",
			Help:      "Wall clock duration of a single upload clustering run",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// ClusteringBacklog reports how many uploads were waiting at the
	// scheduler's last poll.
	ClusteringBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "clustering_backlog_uploads",
			Help:      "Uploads waiting for clustering at the last poll",
		},
	)
)

// Metrics records request count, latency, and in-flight gauge for every
// request. The matched route template is used as the route label so
// path parameters do not explode cardinality.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}
