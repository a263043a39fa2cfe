package log_test

import (
	"sync"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/log"
)

var _ log.Logger = &MockLogger{}

// MockLogger captures entries for assertions. Derived loggers share the
// entry list with their parent.
type MockLogger struct {
	entries *mockEntries

	name          string
	keysAndValues []any
	callerSkip    int
}

type mockEntries struct {
	mu   sync.Mutex
	list []MockLogEntry
}

type MockLogEntry struct {
	Level         log.Level
	Logger        string
	Message       string
	KeysAndValues []any
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		entries:       &mockEntries{},
		name:          "mock",
		keysAndValues: []any{},
	}
}

func (ml *MockLogger) Debug(msg string, kv ...any) { ml.record(log.LevelDebug, msg, kv) }
func (ml *MockLogger) Info(msg string, kv ...any)  { ml.record(log.LevelInfo, msg, kv) }
func (ml *MockLogger) Warn(msg string, kv ...any)  { ml.record(log.LevelWarn, msg, kv) }
func (ml *MockLogger) Error(msg string, kv ...any) { ml.record(log.LevelError, msg, kv) }

func (ml *MockLogger) WithKV(key string, value any) log.Logger {
	child := *ml
	child.keysAndValues = append(append([]any{}, ml.keysAndValues...), key, value)
	return &child
}

func (ml *MockLogger) GetAllKV() []any { return ml.keysAndValues }

func (ml *MockLogger) WithName(name string) log.Logger {
	child := *ml
	child.name = name
	return &child
}

func (ml *MockLogger) Name() string { return ml.name }

func (ml *MockLogger) AddCallerSkip(skip int) log.Logger {
	ml.callerSkip += skip
	return ml
}

func (ml *MockLogger) CallerSkip() int { return ml.callerSkip }

func (ml *MockLogger) Entries() []MockLogEntry {
	ml.entries.mu.Lock()
	defer ml.entries.mu.Unlock()
	return append([]MockLogEntry{}, ml.entries.list...)
}

func (ml *MockLogger) LastEntry() MockLogEntry {
	entries := ml.Entries()
	if len(entries) == 0 {
		return MockLogEntry{}
	}
	return entries[len(entries)-1]
}

func (ml *MockLogger) record(level log.Level, msg string, kv []any) {
	ml.entries.mu.Lock()
	defer ml.entries.mu.Unlock()
	ml.entries.list = append(ml.entries.list, MockLogEntry{
		Level:         level,
		Logger:        ml.name,
		Message:       msg,
		KeysAndValues: append(append([]any{}, ml.keysAndValues...), kv...),
	})
}
