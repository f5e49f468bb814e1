package middleware

import (
	"net/http"
	"runtime/debug"

	"adsrelay-golang/server/internal/logger"
	httppkg "adsrelay-golang/server/internal/pkg/http"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.Error("panic [%s] %s %s: %v\n%s", RequestIDFrom(r.Context()), r.Method, r.URL.Path, v, debug.Stack())
				httppkg.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
