package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests no route matched, so random paths do not
// create new label values.
const unmatchedRoute = "unmatched"

// withMetrics records the request counter and latency histogram. The path
// label is the chi route pattern, e.g. /api/users/{username}.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mw := wrapResponseWriter(w)
		next.ServeHTTP(mw, r)

		path := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(mw.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
