// Package logging provides structured logging for reflection probe
// runs with zap, console, multi-destination and null backends.
package logging

import (
	"fmt"
	"io"
	"strings"
)

// Logger defines the interface for structured probe logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo reports probe progress.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name such as "warn" into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

// Output formats understood by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a logger writing entries at or above level to w:
// zap JSON lines for FormatJSON, colored text for FormatConsole.
func New(format string, w io.Writer, level LogLevel) (Logger, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return NewZapLogger(w, level), nil
	case FormatConsole:
		return NewConsoleLogger(w, level), nil
	}
	return nil, fmt.Errorf(
		"unknown log format %q (want %s or %s)",
		format, FormatJSON, FormatConsole,
	)
}

// NullLogger discards everything. It stands in when no logger is
// configured.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field) {}
func (NullLogger) Warn(string, ...Field) {}
func (NullLogger) Error(string, ...Field) {}
func (NullLogger) Debug(string, ...Field) {}
func (NullLogger) WithFields(...Field) Logger { return NullLogger{} }
func (NullLogger) Close() error { return nil }

var (
	_ Logger = NullLogger{}
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*MultiLogger)(nil)
	_ Logger = (*ZapLogger)(nil)
)
