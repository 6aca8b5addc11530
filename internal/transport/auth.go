package transport

import "net/http"

// APIKeyMiddleware enforces the shared x-api-key header the floor clients
// send. An empty configured key disables the check entirely.
func APIKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("x-api-key")
			if header == "" || header != key {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
