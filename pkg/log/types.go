package log

import (
	"fmt"
	"strings"
)

// Logger is the structured logger used across the module.
// keysAndValues are alternating key/value pairs, e.g. "user", "alice".
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// WithKV returns a logger that attaches key/value to every later entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the pairs attached with WithKV, oldest first.
	GetAllKV() []any
	// WithName returns a logger scoped under name. Names nest with dots.
	WithName(name string) Logger
	Name() string
	// AddCallerSkip returns a logger that reports its caller skip frames
	// higher. Implementations without caller reporting return themselves.
	AddCallerSkip(skip int) Logger
}

// Level is the minimum severity an entry needs to be written.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// UnmarshalText accepts the level names case-insensitively so the value can
// come straight from an environment variable.
func (l *Level) UnmarshalText(text []byte) error {
	switch lvl := Level(strings.ToLower(strings.TrimSpace(string(text)))); lvl {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		*l = lvl
		return nil
	case "":
		*l = LevelInfo
		return nil
	default:
		return fmt.Errorf("unknown log level %q", string(text))
	}
}

// SetValue lets environment loaders that look for a SetValue method parse
// the level with the same rules.
func (l *Level) SetValue(s string) error {
	return l.UnmarshalText([]byte(s))
}

func (l Level) String() string {
	return string(l)
}

// SpanEventRecorder mirrors log entries onto a trace span.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string

	// RecordEvent adds an event named name with keysAndValues as attributes.
	RecordEvent(name string, keysAndValues ...any)
	// RecordError is RecordEvent plus marking the span as failed.
	RecordError(name string, keysAndValues ...any)
}
