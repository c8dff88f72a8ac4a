package middleware

import (
	"net/http"
	"strings"

	"github.com/peopleops/hr-management/internal"
)

// BearerToken extracts the Authorization bearer token into the request
// context. It never rejects on its own: the role guard decides, per
// operation, what an absent or invalid token means.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				r = r.WithContext(internal.ContextWithToken(r.Context(), parts[1]))
			}
		}
		next.ServeHTTP(w, r)
	})
}
