// Package logger provides logging functionality for the Kafka broker,
// backed by github.com/rs/zerolog rather than hand-rolled fmt.Fprintf
// formatting. The Logger/Level/Debug/Info/Error shape stays the same; what
// changed is that log lines now carry structured fields (correlation ID,
// API key, remote address) instead of having everything interpolated into
// the message text.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level defines the severity level of the log
type Level int

const (
	// DEBUG level logs detailed information for debugging
	DEBUG Level = iota
	// INFO level logs informational messages
	INFO
	// ERROR level logs error messages
	ERROR
)

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger is the interface for logging messages
type Logger struct {
	zl zerolog.Logger
}

// New creates a new logger with the specified minimum level
func New(level Level) *Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().
		Level(level.zerologLevel())
	return &Logger{zl: zl}
}

func (l *Logger) event(level Level) *zerolog.Event {
	switch level {
	case DEBUG:
		return l.zl.Debug()
	case ERROR:
		return l.zl.Error()
	default:
		return l.zl.Info()
	}
}

// Log logs a message with the specified level
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	l.event(level).Msgf(format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log(DEBUG, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(INFO, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(ERROR, format, args...)
}

// WithFields returns a child Logger that attaches fields to every line it
// writes, for request-scoped context such as correlation ID, API key, and
// remote address.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}
