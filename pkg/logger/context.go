package logger

import "context"

// ContextKey is an alias used for storing values in context.
type ContextKey string

// LoggerCtxKey is the context key used to store the Logger instance.
const LoggerCtxKey ContextKey = "logger"

// ContextWithLogger stores the logger in the context.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

// FromContext retrieves the logger from the context. If none is found, it
// falls back to a lazily-initialized default logger so callers always get a
// usable instance.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
			return l
		}
	}
	return getDefaultLogger()
}
