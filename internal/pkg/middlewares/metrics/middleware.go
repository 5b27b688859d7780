package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"parcel-service/pkg/logger"
)

func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			code := strconv.Itoa(rw.status)
			route := RouteTemplate(r)

			HTTPRequestDuration.WithLabelValues(r.Method, route, code).Observe(elapsed.Seconds())
			HTTPRequestTotal.WithLabelValues(r.Method, route, code).Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", route),
				logger.NewField("status", code),
				logger.NewField("duration", elapsed.String()),
			).Info("HTTP request")
		})
	}
}

// RouteTemplate returns the mux path template of the matched route, or the
// raw path when the request did not match one. Templates keep label
// cardinality bounded.
func RouteTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
