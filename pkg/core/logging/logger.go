// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logging
// Description: Structured leveled logger
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes structured entries to an io.Writer. Derived loggers
// created by the With* methods share the writer and its lock.
type Logger struct {
	name          string
	level         Level
	formatter     Formatter
	out           *syncWriter
	requestID     string
	contextFields Fields
}

// syncWriter serializes writes from loggers sharing one output
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Config holds the settings of a single Logger
type Config struct {
	Name   string
	Level  Level
	Format Format
	Output io.Writer
}

// NewWithConfig creates a logger from cfg
func NewWithConfig(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		name:          cfg.Name,
		level:         cfg.Level,
		formatter:     newFormatter(cfg.Format),
		out:           &syncWriter{w: out},
		contextFields: Fields{},
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Level returns the minimum level
func (l *Logger) Level() Level { return l.level }

// WithField returns a logger that adds key=value to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a logger that adds fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := *l
	clone.contextFields = l.contextFields.Merge(fields)
	return &clone
}

// WithRequestID returns a logger that tags entries with a request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	clone := *l
	clone.requestID = requestID
	return &clone
}

// WithLevel returns a logger with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := *l
	clone.level = level
	return &clone
}

func (l *Logger) Trace(message string, fields ...Fields) { l.log(LevelTrace, message, nil, fields) }
func (l *Logger) Debug(message string, fields ...Fields) { l.log(LevelDebug, message, nil, fields) }
func (l *Logger) Info(message string, fields ...Fields)  { l.log(LevelInfo, message, nil, fields) }
func (l *Logger) Warn(message string, fields ...Fields)  { l.log(LevelWarn, message, nil, fields) }
func (l *Logger) Error(message string, fields ...Fields) { l.log(LevelError, message, nil, fields) }

// ErrorWithErr logs at error level with err attached
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields)
}

// WarnWithErr logs at warn level with err attached
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields)
}

// StartTimer starts a Timer for operation
func (l *Logger) StartTimer(operation string) *Timer {
	return &Timer{logger: l, operation: operation, start: time.Now(), fields: Fields{}}
}

func (l *Logger) log(level Level, message string, err error, fields []Fields) {
	if l == nil || !level.Enabled(l.level) {
		return
	}

	entry := &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Logger:    l.name,
		RequestID: l.requestID,
		Fields:    l.contextFields,
		Error:     err,
	}
	for _, f := range fields {
		entry.Fields = entry.Fields.Merge(f)
	}

	if b, fmtErr := l.formatter.Format(entry); fmtErr == nil {
		l.out.Write(b)
	}
}

// Timer measures an operation and logs its duration when stopped
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	stopped   bool
}

// WithField adds a field to the completion entry
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Stop logs "<operation> completed" at debug level and returns the elapsed time
func (t *Timer) Stop() time.Duration {
	return t.finish(nil)
}

// StopWithError logs "<operation> failed" at error level when err is not nil
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(err)
}

func (t *Timer) finish(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := time.Since(t.start)
	fields := t.fields.Merge(Fields{
		"operation":   t.operation,
		"duration_ms": float64(elapsed.Nanoseconds()) / 1e6,
	})

	if err != nil {
		t.logger.ErrorWithErr(t.operation+" failed", err, fields)
	} else {
		t.logger.Debug(t.operation+" completed", fields)
	}
	return elapsed
}
