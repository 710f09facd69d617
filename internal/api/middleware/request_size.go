package middleware

import (
	"net/http"
)

const (
	// DefaultMaxBodySize is 1MB, plenty for any registration form.
	DefaultMaxBodySize int64 = 1 << 20
)

// RequestSize limits the size of incoming request bodies with
// http.MaxBytesReader. Oversized bodies fail the JSON decode in the handler
// and come back as 400s.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// PublicRequestSize limits request bodies to 1MB for public endpoints.
func PublicRequestSize() func(http.Handler) http.Handler {
	return RequestSize(DefaultMaxBodySize)
}
