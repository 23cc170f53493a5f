// Package logging adapts logrus to the domain Logger interface.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ochairo/hashwatch/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of logrus
type Logger struct {
	entry *logrus.Entry
}

// Config selects the log destination, level and format
type Config struct {
	Output io.Writer
	Level  string // debug, info, warn, error
	Format string // text or json
}

// New creates a logrus-backed logger
func New(config Config) (*Logger, error) {
	l := logrus.New()

	if config.Output != nil {
		l.SetOutput(config.Output)
	}

	level := config.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.SetLevel(lvl)

	switch config.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", config.Format)
	}

	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.with(fields).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.with(fields).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.with(fields).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.with(fields).Error(msg)
}

func (l *Logger) with(fields []interfaces.Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			// logrus renders error values as {} in JSON
			data[f.Key] = err.Error()
			continue
		}
		data[f.Key] = f.Value
	}
	return l.entry.WithFields(data)
}
