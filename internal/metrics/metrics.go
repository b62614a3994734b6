// Package metrics registers the service's Prometheus collectors and exposes
// them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hospital_locator_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hospital_locator_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"route"})
	QueryResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hospital_locator_query_results",
		Help:    "Number of hospitals returned per query",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	}, []string{"mode"})
	DatasetFetchFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hospital_locator_dataset_fetch_failures_total",
		Help: "Total failed reads of the active hospital dataset",
	})
	RouteCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hospital_locator_route_cache_hits_total",
		Help: "Total route cache hits",
	})
	RouteCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hospital_locator_route_cache_misses_total",
		Help: "Total route cache misses",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(QueryResults)
	prometheus.MustRegister(DatasetFetchFailuresTotal)
	prometheus.MustRegister(RouteCacheHitsTotal)
	prometheus.MustRegister(RouteCacheMissesTotal)
}

// Middleware records request counts and latency keyed by the matched route
// template, so /hospitals/1 and /hospitals/2 share a series.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// ObserveResults records the result size of one query mode.
func ObserveResults(mode string, n int) {
	QueryResults.WithLabelValues(mode).Observe(float64(n))
}

// ObserveRouteCache counts a route cache lookup. Its signature matches
// routing.WithObserver.
func ObserveRouteCache(hit bool) {
	if hit {
		RouteCacheHitsTotal.Inc()
		return
	}
	RouteCacheMissesTotal.Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler { return promhttp.Handler() }
