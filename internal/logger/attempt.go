package logger

import (
	"context"

	"github.com/google/uuid"
)

type attemptKey struct{}

// WithAttempt tags ctx with a fresh processing attempt ID and returns it
func WithAttempt(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, attemptKey{}, id), id
}

// AttemptFromContext returns the attempt ID stored by WithAttempt
func AttemptFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(attemptKey{}).(string)
	return id, ok
}
