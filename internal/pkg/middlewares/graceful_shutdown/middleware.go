package graceful_shutdown

import (
	"net/http"
	"sync/atomic"
)

// Middleware answers 503 once draining is set, so load balancers stop
// routing to an instance that is about to exit. Requests already inside the
// handler chain are left to finish.
func Middleware(draining *atomic.Bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if draining.Load() {
				w.Header().Set("Connection", "close")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"message":"service is shutting down"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
