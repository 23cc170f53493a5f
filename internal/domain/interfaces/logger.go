// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger defines the interface for structured logging
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// WithFields returns a logger that adds fields to every entry
func WithFields(l Logger, fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &fieldLogger{inner: l, fields: fields}
}

type fieldLogger struct {
	inner  Logger
	fields []Field
}

func (f *fieldLogger) Debug(msg string, fields ...Field) { f.inner.Debug(msg, f.merge(fields)...) }

func (f *fieldLogger) Info(msg string, fields ...Field) { f.inner.Info(msg, f.merge(fields)...) }

func (f *fieldLogger) Warn(msg string, fields ...Field) { f.inner.Warn(msg, f.merge(fields)...) }

func (f *fieldLogger) Error(msg string, fields ...Field) { f.inner.Error(msg, f.merge(fields)...) }

func (f *fieldLogger) merge(fields []Field) []Field {
	merged := make([]Field, 0, len(f.fields)+len(fields))
	merged = append(merged, f.fields...)
	return append(merged, fields...)
}
