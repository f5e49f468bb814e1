package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	httppkg "adsrelay-golang/server/internal/pkg/http"
)

// Auth guards the relay with a shared proxy key when apiKey is set. The key
// travels in x-api-key (or ?key=) because Authorization carries the caller's
// Google token on some clients.
func Auth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Liveness endpoints stay open.
			if r.URL.Path == "/ping" || r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			key := strings.TrimSpace(r.Header.Get("x-api-key"))
			if key == "" {
				key = strings.TrimSpace(r.URL.Query().Get("key"))
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				httppkg.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
