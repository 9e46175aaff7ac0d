package logger

import (
	"context"

	"github.com/narwhalmedia/requestbot/pkg/interfaces"
)

type contextKey struct{}

var loggerKey = contextKey{}

// FromContext retrieves the turn logger from the context, or fallback.
func FromContext(ctx context.Context, fallback interfaces.Logger) interfaces.Logger {
	if logger, ok := ctx.Value(loggerKey).(interfaces.Logger); ok {
		return logger
	}
	return fallback
}

// WithContext adds a logger to the context.
func WithContext(ctx context.Context, logger interfaces.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithFields derives a logger from the one in ctx (or base) and stores it.
func WithFields(ctx context.Context, base interfaces.Logger, fields ...interfaces.Field) context.Context {
	return WithContext(ctx, FromContext(ctx, base).WithFields(fields...))
}
