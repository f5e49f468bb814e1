package middleware

import (
	"context"
	"net/http"

	"adsrelay-golang/server/internal/pkg/id"
)

const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestID reuses a sane inbound X-Request-ID or mints one, and echoes it
// on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if !id.ValidRequestID(rid) {
			rid = id.RequestID()
		}
		w.Header().Set(HeaderRequestID, rid)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, rid)))
	})
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return "-"
}
