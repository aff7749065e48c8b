package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger provides structured logging for rclonewrap operations.
// This interface allows callers to plug in their own logging implementation.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}

// noopLogger is a Logger implementation that does nothing.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return &noopLogger{}
}

// charmLogger adapts a charmbracelet logger to Logger.
type charmLogger struct {
	l *log.Logger
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}

// NewLogger returns a Logger writing human-readable lines to w.
// Debug messages are shown only when debug is true.
func NewLogger(w io.Writer, debug bool) Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	return &charmLogger{
		l: log.NewWithOptions(w, log.Options{
			Level:  level,
			Prefix: "rclonewrap",
		}),
	}
}
