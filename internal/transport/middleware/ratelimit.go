package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/adityakarchi/recipe-management/internal/config"
	"github.com/adityakarchi/recipe-management/internal/metrics"
)

// RateLimit returns middleware that applies a token bucket per client IP.
// Limiters live in an expiring LRU so idle clients are forgotten without a
// cleanup goroutine. A disabled config yields a pass-through middleware.
func RateLimit(cfg config.RateLimitConfig) Middleware {
	if !cfg.Enabled {
		return Identity
	}

	cache := expirable.NewLRU[string, *rate.Limiter](cfg.CacheSize, nil, cfg.CacheTTL)
	limit := rate.Limit(cfg.RequestsPerSec)

	getLimiter := func(key string) *rate.Limiter {
		limiter, ok := cache.Get(key)
		if !ok {
			limiter = rate.NewLimiter(limit, cfg.Burst)
			cache.Add(key, limiter)
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := getLimiter(clientIP(r))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				metrics.RateLimited.Inc()
				writeMessage(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeMessage(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%.0f", math.Max(0, math.Floor(limiter.Tokens()))))

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr. Forwarding headers are not
// trusted.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
