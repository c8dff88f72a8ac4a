package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextTokenKey ctxKey = "bearerToken"

// ContextWithToken stores the raw bearer token extracted from the
// Authorization header. An absent value means the request carried no token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextTokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(contextTokenKey).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
