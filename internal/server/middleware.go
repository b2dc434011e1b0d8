package server

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every response with a unique id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.New().String())
		next.ServeHTTP(w, r)
	})
}
