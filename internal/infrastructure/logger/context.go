package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// CustomerIDKey is the context key for the customer being computed
	CustomerIDKey contextKey = "customer_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if
// not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithCustomerID adds the customer id to the context and returns the
// enriched logger
func WithCustomerID(ctx context.Context, logger *zap.Logger, customerID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, CustomerIDKey, customerID)
	enriched := logger.With(zap.String("customer_id", customerID))
	return WithContext(ctx, enriched), enriched
}

// GetCustomerID retrieves the customer id from context
func GetCustomerID(ctx context.Context) string {
	if id, ok := ctx.Value(CustomerIDKey).(string); ok {
		return id
	}
	return ""
}
