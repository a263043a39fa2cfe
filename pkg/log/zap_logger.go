package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = &ZapLogger{}

// ZapLogger writes entries through a zap SugaredLogger.
type ZapLogger struct {
	lg            *zap.SugaredLogger
	keysAndValues []any
}

// Config selects the encoder, threshold and destination of a ZapLogger.
type Config struct {
	Format string `yaml:"format" env:"GAMEJOLT_LOG_FORMAT" env-default:"console" validate:"omitempty,oneof=console logfmt json"`
	Level  Level  `yaml:"level" env:"GAMEJOLT_LOG_LEVEL" env-default:"info" validate:"omitempty,oneof=debug info warn error"`
	Output string `yaml:"output" env:"GAMEJOLT_LOG_OUTPUT" env-default:"stderr"` // stderr, stdout or a file path
}

var validate = validator.New()

// Validate checks Format and Level against the supported values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}
	return nil
}

// NewZapLogger builds a logger from conf. Entries are also copied to every
// writer in extraWriters, which is how tests capture output.
func NewZapLogger(conf Config, extraWriters ...zapcore.WriteSyncer) (Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(ts.UTC().Format(time.RFC3339))
	}

	var encoder zapcore.Encoder
	switch conf.Format {
	case "logfmt":
		encoder = zaplogfmt.NewEncoder(encCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unsupported log format %q", conf.Format)
	}

	ws, err := openOutput(conf.Output)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(append(extraWriters, ws)...), toZapLevel(conf.Level))
	// Skip ZapLogger.<Level> and ZapLogger.log.
	zl := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()

	return &ZapLogger{lg: zl}, nil
}

func openOutput(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.Lock(file), nil
}

func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.log(LevelDebug, msg, keysAndValues...)
}

func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.log(LevelInfo, msg, keysAndValues...)
}

func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.log(LevelWarn, msg, keysAndValues...)
}

func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.log(LevelError, msg, keysAndValues...)
}

func (l *ZapLogger) log(level Level, msg string, keysAndValues ...any) {
	l.lg.Logw(toZapLevel(level), msg, keysAndValues...)
}

func (l *ZapLogger) WithKV(key string, value any) Logger {
	kv := make([]any, 0, len(l.keysAndValues)+2)
	kv = append(kv, l.keysAndValues...)
	return &ZapLogger{
		lg:            l.lg.With(key, value),
		keysAndValues: append(kv, key, value),
	}
}

func (l *ZapLogger) GetAllKV() []any {
	return l.keysAndValues
}

func (l *ZapLogger) WithName(name string) Logger {
	return &ZapLogger{
		lg:            l.lg.Named(name),
		keysAndValues: l.keysAndValues,
	}
}

func (l *ZapLogger) Name() string {
	return l.lg.Desugar().Name()
}

func (l *ZapLogger) AddCallerSkip(skip int) Logger {
	return &ZapLogger{
		lg:            l.lg.WithOptions(zap.AddCallerSkip(skip)),
		keysAndValues: l.keysAndValues,
	}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.lg.Sync()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
