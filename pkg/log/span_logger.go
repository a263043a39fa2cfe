package log

var _ Logger = &SpanLogger{}

// SpanLogger forwards entries to a wrapped Logger and mirrors them onto a
// span through a SpanEventRecorder.
type SpanLogger struct {
	lg  Logger
	ser SpanEventRecorder
}

// NewSpanLogger wraps lg. The wrapped logger gets one extra caller skip so
// reported call sites point past the SpanLogger.
func NewSpanLogger(lg Logger, ser SpanEventRecorder) Logger {
	return &SpanLogger{
		lg:  lg.AddCallerSkip(1),
		ser: ser,
	}
}

func (sl *SpanLogger) Debug(msg string, keysAndValues ...any) {
	sl.ser.RecordEvent(msg, sl.spanAttributes(LevelDebug, keysAndValues)...)
	sl.lg.Debug(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl *SpanLogger) Info(msg string, keysAndValues ...any) {
	sl.ser.RecordEvent(msg, sl.spanAttributes(LevelInfo, keysAndValues)...)
	sl.lg.Info(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl *SpanLogger) Warn(msg string, keysAndValues ...any) {
	sl.ser.RecordEvent(msg, sl.spanAttributes(LevelWarn, keysAndValues)...)
	sl.lg.Warn(msg, sl.withTraceIDs(keysAndValues)...)
}

// Error also marks the span as failed.
func (sl *SpanLogger) Error(msg string, keysAndValues ...any) {
	sl.ser.RecordError(msg, sl.spanAttributes(LevelError, keysAndValues)...)
	sl.lg.Error(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl *SpanLogger) WithKV(key string, value any) Logger {
	return &SpanLogger{lg: sl.lg.WithKV(key, value), ser: sl.ser}
}

func (sl *SpanLogger) GetAllKV() []any {
	return sl.lg.GetAllKV()
}

func (sl *SpanLogger) WithName(name string) Logger {
	return &SpanLogger{lg: sl.lg.WithName(name), ser: sl.ser}
}

func (sl *SpanLogger) Name() string {
	return sl.lg.Name()
}

func (sl *SpanLogger) AddCallerSkip(skip int) Logger {
	return &SpanLogger{lg: sl.lg.AddCallerSkip(skip), ser: sl.ser}
}

func (sl *SpanLogger) withTraceIDs(keysAndValues []any) []any {
	kv := make([]any, 0, len(keysAndValues)+4)
	kv = append(kv, "traceId", sl.ser.TraceID(), "spanId", sl.ser.SpanID())
	return append(kv, keysAndValues...)
}

// spanAttributes carries the level, the logger name and the persistent pairs
// because the span event has no other access to them.
func (sl *SpanLogger) spanAttributes(level Level, keysAndValues []any) []any {
	persistent := sl.lg.GetAllKV()
	kv := make([]any, 0, len(persistent)+len(keysAndValues)+4)
	kv = append(kv, "level", string(level), "component", sl.lg.Name())
	kv = append(kv, persistent...)
	return append(kv, keysAndValues...)
}
