package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/roadmap-planner/internal/metrics"
)

// NewMetrics returns a middleware that records request latency in
// metrics.APILatency, labelled by method, chi route pattern and status.
// Unmatched requests share the "unmatched" path label so arbitrary URLs
// cannot blow up label cardinality.
func NewMetrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := routePattern(r)
			if path == "" || (status == http.StatusNotFound && path == "/*") {
				path = "unmatched"
			}
			metrics.APILatency.
				WithLabelValues(r.Method, path, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
		})
	}
}
