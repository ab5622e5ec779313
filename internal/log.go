package internal

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// ParseLogLevel maps LOG_LEVEL names to levels, defaulting to info
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	case "TRACE":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

// Logger provides leveled logging
type Logger struct {
	level LogLevel
	out   *charmlog.Logger
}

// NewLogger creates a new logger with the specified level writing to w
func NewLogger(w io.Writer, level LogLevel) *Logger {
	out := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charmLevel(level),
	})
	return &Logger{level: level, out: out}
}

// NewDefaultLogger creates a stderr logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	return NewLogger(os.Stderr, ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// charm has no trace level; trace lines go out at debug once our own gate lets them through.
func charmLevel(level LogLevel) charmlog.Level {
	switch level {
	case LogLevelError:
		return charmlog.ErrorLevel
	case LogLevelWarn:
		return charmlog.WarnLevel
	case LogLevelInfo:
		return charmlog.InfoLevel
	default:
		return charmlog.DebugLevel
	}
}

// With returns a logger carrying a prefix, e.g. the component name
func (l *Logger) With(prefix string) *Logger {
	return &Logger{level: l.level, out: l.out.WithPrefix(prefix)}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		l.out.Errorf(format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		l.out.Warnf(format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.out.Infof(format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.out.Debugf(format, args...)
	}
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	if l.level >= LogLevelTrace {
		l.out.Debugf("[trace] "+format, args...)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Discard returns a logger that writes nothing, for tests
func Discard() *Logger {
	return NewLogger(io.Discard, LogLevelError)
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
