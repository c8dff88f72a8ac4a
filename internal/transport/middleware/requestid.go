package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/peopleops/hr-management/pkg/logger"
)

type requestIDKey struct{}

// RequestID assigns every request a unique id, echoes it in the
// X-Request-ID response header and binds it to the request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = logger.With(ctx, "request_id", id)

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
