package logging

import (
	"errors"
	"fmt"
	"strings"
)

// Level orders log severities. A logger drops entries below its level.
type Level int

const (
	// DebugLevel adds one entry per classified candidate.
	DebugLevel Level = iota
	InfoLevel
	// WarnLevel marks a sink that failed while the others kept going.
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// ErrUnknownLevel is returned by ParseLevel.
var ErrUnknownLevel = errors.New("logging: unknown level")

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel reads one of debug, info, warn or error, in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return InfoLevel, fmt.Errorf("%w %q", ErrUnknownLevel, s)
}

// Field is one key of a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is what the engine and exporter log through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	// Enabled lets callers skip building per-candidate entries nobody reads.
	Enabled(level Level) bool
}

// NopLogger discards everything. Library packages default to it.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }
func (NopLogger) Enabled(Level) bool     { return false }

// NewNopLogger creates a logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}
