package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/adityakarchi/recipe-management/internal/metrics"
)

// Metrics records request count and latency labelled by the matched
// ServeMux pattern. It must wrap the mux directly: r.Pattern is only set
// once the mux has routed the request.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
