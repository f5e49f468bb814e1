package middleware

import (
	"net/http"
	"strconv"
	"time"

	"adsrelay-golang/server/internal/metrics"
)

// Metrics records request counts and latency. Paths outside routes are
// folded into "other" to keep label cardinality bounded.
func Metrics(routes []string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			route := r.URL.Path
			if _, ok := known[route]; !ok {
				route = "other"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
