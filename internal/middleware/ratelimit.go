// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/iyunix/go-newsbot/internal/ratelimit"
)

func rateLimitKey(name string, r *http.Request) string {
	return name + ":" + ratelimit.GetClientIP(r)
}

// RateLimitMiddleware rejects a client with 429 once it exceeds the limiter's
// budget for the named route.
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := limiter.Allow(rateLimitKey(name, r))

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", d.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", d.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", d.ResetTime.Unix()))

			if !d.Allowed {
				logger.Warn("rate limited", "route", name, "client", ratelimit.GetClientIP(r), "banned", d.Banned)

				if d.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", d.RetryAfter.Seconds()))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      fmt.Sprintf("요청이 너무 많습니다. %d분 후에 다시 시도해주세요.", int(d.RetryAfter.Minutes())+1),
					"retryAfter": int(d.RetryAfter.Seconds()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthSuccessMiddleware clears the client's counter after a 2xx response.
func AuthSuccessMiddleware(limiter *ratelimit.MemoryRateLimiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			if rec.statusCode >= 200 && rec.statusCode < 300 {
				limiter.Reset(rateLimitKey(name, r))
			}
		})
	}
}
