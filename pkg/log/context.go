package log

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type contextKey struct{}

var loggerContextKey = contextKey{}

// SetContextLogger returns a copy of ctx carrying lg. A nil lg stores a
// NoopLogger. If ctx holds a valid span, lg is wrapped in a SpanLogger bound
// to that span.
func SetContextLogger(ctx context.Context, lg Logger) context.Context {
	if lg == nil {
		lg = NewNoopLogger()
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		lg = NewSpanLogger(unwrapSpanLogger(lg), NewOtelSpanEventRecorder(span))
	}

	return context.WithValue(ctx, loggerContextKey, lg)
}

// FromContext returns the logger stored in ctx, or a NoopLogger.
func FromContext(ctx context.Context) Logger {
	if lg, ok := ctx.Value(loggerContextKey).(Logger); ok {
		return lg
	}
	return NewNoopLogger()
}

// unwrapSpanLogger strips an existing span binding so that re-attaching a
// logger inside a child span does not record every entry twice.
func unwrapSpanLogger(lg Logger) Logger {
	if sl, ok := lg.(*SpanLogger); ok {
		return sl.lg.AddCallerSkip(-1)
	}
	return lg
}
