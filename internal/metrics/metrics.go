// Package metrics declares the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "recipes"

const (
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// Result label values for RecipeOperations.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route pattern and status code",
		Namespace: Namespace,
	},
	[]string{LabelMethod, LabelRoute, LabelStatus},
)

var HTTPDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
	[]string{LabelMethod, LabelRoute},
)

var RecipeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      "operations_total",
		Help:      "Recipe service operations by name and outcome",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelResult},
)

var RateLimited = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter",
		Namespace: Namespace,
	},
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
