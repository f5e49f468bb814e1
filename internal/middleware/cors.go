package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "Authorization", "developer-token", "login-customer-id", "Accept", "x-api-key", HeaderRequestID}
)

// CORS applies an allow-all origin policy and answers every OPTIONS request
// with a bare 200, before auth and routing.
func CORS(next http.Handler) http.Handler {
	policy := cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     corsMethods,
		AllowedHeaders:     corsHeaders,
		ExposedHeaders:     []string{HeaderRequestID},
		MaxAge:             300,
		OptionsPassthrough: true,
	})

	return policy(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			if w.Header().Get("Access-Control-Allow-Origin") == "" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
