package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// resolutionTotal counts resolutions by strategy and outcome.
	// outcome is "valid", an invalid reason such as "basic-course", or "error".
	resolutionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prereqpath_resolutions_total",
		Help: "Total prerequisite path resolutions by strategy and outcome",
	}, []string{"strategy", "outcome"})

	resolutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prereqpath_resolution_duration_seconds",
		Help:    "End-to-end resolution duration",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"strategy"})

	removedEdges = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prereqpath_cycle_removed_edges",
		Help:    "Course edges removed by the cycle resolver per resolution",
		Buckets: []float64{0, 1, 2, 5, 10, 20},
	})

	pathLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prereqpath_path_length",
		Help:    "Courses in a valid resolved path, target included",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})

	// snapshotLoads counts concept snapshot lookups by source: "memory", "redis" or "store".
	snapshotLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prereqpath_snapshot_loads_total",
		Help: "Concept snapshot lookups by source",
	}, []string{"source"})

	membershipFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prereqpath_membership_fetch_duration_seconds",
		Help:    "Candidate membership fetch duration by mode",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"mode"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prereqpath_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prereqpath_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func ObserveResolution(strategy, outcome string, d time.Duration) {
	if strategy == "" {
		strategy = "none"
	}
	resolutionTotal.WithLabelValues(strategy, outcome).Inc()
	resolutionDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

func ObservePath(length, removed int) {
	pathLength.Observe(float64(length))
	removedEdges.Observe(float64(removed))
}

func ObserveSnapshotLoad(source string) {
	snapshotLoads.WithLabelValues(source).Inc()
}

func ObserveMembershipFetch(mode string, d time.Duration) {
	membershipFetchDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// MetricsHandler serves the default registry in the Prometheus text format.
func MetricsHandler() http.Handler { return promhttp.Handler() }
