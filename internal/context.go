package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextClaimsKey ctxKey = "sessionClaims"

// ContextWithClaims stores validated session claims for downstream handlers.
func ContextWithClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, contextClaimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) any {
	if ctx == nil {
		return nil
	}
	return ctx.Value(contextClaimsKey)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
