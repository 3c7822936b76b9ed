package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/response"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

// RateLimit returns a per-client-IP limiter allowing requests per window.
// A non-positive limit disables limiting.
func RateLimit(requests int, window time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			}).Warn("Rate limit exceeded")

			response.Error(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}
