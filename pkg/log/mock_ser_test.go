package log_test

// MockSpanEventRecorder remembers the last event it was given.
type MockSpanEventRecorder struct {
	traceID           string
	spanID            string
	hasErr            bool
	lastEventName     string
	lastEventMetadata []any
}

func NewMockSpanEventRecorder(traceID, spanID string) *MockSpanEventRecorder {
	return &MockSpanEventRecorder{traceID: traceID, spanID: spanID}
}

func (ser *MockSpanEventRecorder) TraceID() string { return ser.traceID }
func (ser *MockSpanEventRecorder) SpanID() string  { return ser.spanID }

func (ser *MockSpanEventRecorder) RecordEvent(name string, keysAndValues ...any) {
	ser.lastEventName = name
	ser.lastEventMetadata = keysAndValues
}

func (ser *MockSpanEventRecorder) RecordError(name string, keysAndValues ...any) {
	ser.hasErr = true
	ser.RecordEvent(name, keysAndValues...)
}

func (ser *MockSpanEventRecorder) LastEventName() string    { return ser.lastEventName }
func (ser *MockSpanEventRecorder) LastEventMetadata() []any { return ser.lastEventMetadata }
func (ser *MockSpanEventRecorder) HasError() bool           { return ser.hasErr }
