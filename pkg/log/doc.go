// Package log is the structured logging layer shared by the Game Jolt client
// and the gjcli tool.
//
// Loggers travel through context.Context rather than package globals:
//
//	lg, err := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelDebug})
//	if err != nil {
//	    return err
//	}
//	ctx = log.SetContextLogger(ctx, lg.WithName("gamejolt"))
//
//	// deeper in the call stack
//	log.FromContext(ctx).Info("trophy granted", "trophyId", 7)
//
// FromContext never returns nil; a context without a logger yields a
// NoopLogger.
//
// When the context passed to SetContextLogger carries a recording
// OpenTelemetry span, the logger is wrapped in a SpanLogger. Every entry is
// then mirrored onto the span as an event and tagged with traceId and spanId,
// and Error entries mark the span status as failed.
//
// Configuration is read from the environment through the struct tags on
// Config (GAMEJOLT_LOG_FORMAT, GAMEJOLT_LOG_LEVEL, GAMEJOLT_LOG_OUTPUT).
package log
