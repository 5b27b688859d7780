package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"parcel-service/internal/handlers/rest/response"
	"parcel-service/internal/pkg/middlewares/metrics"
	"parcel-service/pkg/logger"
)

// Middleware rejects a client with 429 once its bucket is empty. Clients are
// told apart by remote IP.
func Middleware(log handlerLogger, burst int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("client", key),
			).Warn("rate limit exceeded")

			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))
			w.Header().Set("Retry-After", "1")
			response.Error(w, log, http.StatusTooManyRequests, "rate limit exceeded, try again later")
		})
	}
}

func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
