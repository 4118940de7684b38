package middleware

import (
	"net/http"
	"strconv"
)

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. Requests whose Content-Length already exceeds the
// limit are rejected with 413 before reaching the next handler; bodies of
// unknown length are wrapped in http.MaxBytesReader so the read fails once the
// limit is crossed and the handler answers 413 itself.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	tooLarge := []byte(`{"error":{"code":"payload_too_large","message":"request body exceeds ` +
		strconv.FormatInt(limit, 10) + ` bytes"}}` + "\n")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				//nolint:errcheck
				w.Write(tooLarge)
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
