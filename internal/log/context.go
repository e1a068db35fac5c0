package log

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts the logger stored by WithLogger, falling back to the
// slog default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogCommit records a successful form commit.
func (sl *StructuredLogger) LogCommit(ctx context.Context, kind, key string, index int, op string) {
	fields := NewFields().
		WithRecord(kind, key, index).
		WithOperation(op).
		WithComponent(ComponentForm)

	sl.logger.Logger.Log(ctx, slog.LevelInfo, "Record committed", fields.ToSlice()...)
}

// LogRejected records a commit refused by validation.
func (sl *StructuredLogger) LogRejected(ctx context.Context, kind string, missing []string) {
	sl.logger.Logger.Log(ctx, slog.LevelInfo, "Record rejected",
		FieldComponent, ComponentForm,
		FieldKind, kind,
		FieldMissing, missing,
		FieldOperation, OpValidate,
	)
}

// LogPersisted records a collection write that reached the store.
func (sl *StructuredLogger) LogPersisted(ctx context.Context, key string, records, bytes int, durationMs int64) {
	fields := NewFields().
		WithPayload(records, bytes).
		WithOperation(OpPersist).
		WithComponent(ComponentWorker)
	fields[FieldKey] = key
	fields[FieldDuration] = durationMs

	sl.logger.Logger.Log(ctx, slog.LevelDebug, "Collection persisted", fields.ToSlice()...)
}

// LogPersistFailure records a collection write that did not reach the store.
func (sl *StructuredLogger) LogPersistFailure(ctx context.Context, key string, records int, err error) {
	fields := NewFields().
		WithError(err).
		WithOperation(OpPersist).
		WithComponent(ComponentWorker)
	fields[FieldKey] = key
	fields[FieldRecords] = records

	sl.logger.Logger.Log(ctx, slog.LevelError, "Collection persist failed", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.Logger.Log(ctx, slog.LevelError, msg, allFields.ToSlice()...)
}
