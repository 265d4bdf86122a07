// Package cors applies the permissive cross-origin policy of the public API.
package cors

import (
	"net/http"
	"strings"
)

var (
	AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	AllowedHeaders = []string{"Content-Type"}
)

// Handler sets the CORS and JSON content-type headers on every response and
// answers any OPTIONS request with 200 and an empty body.
func Handler(next http.Handler) http.Handler {
	methods := strings.Join(AllowedMethods, ", ")
	headers := strings.Join(AllowedHeaders, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", headers)
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Content-Type", "application/json")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)

			return
		}

		next.ServeHTTP(w, r)
	})
}
