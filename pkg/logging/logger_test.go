package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"DEBUG", DebugLevel, false},
		{"debug", DebugLevel, false},
		{" info ", InfoLevel, false},
		{"Warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"warning", InfoLevel, true},
		{"bogus", InfoLevel, true},
		{"", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrUnknownLevel", tt.input, err)
				}
			} else if err != nil {
				t.Errorf("ParseLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if got := Level(42).String(); got != "level(42)" {
		t.Errorf("Level(42).String() = %q, want level(42)", got)
	}
	for _, l := range []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel} {
		back, err := ParseLevel(l.String())
		if err != nil || back != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), back, err)
		}
	}
}

func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("classified",
		RunID("abc"),
		Ordinal(3),
		Verdict(true),
		SpaceSize(9),
	)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if entry.Message != "classified" {
		t.Errorf("Message = %q, want classified", entry.Message)
	}
	if entry.Fields["run_id"] != "abc" {
		t.Errorf("run_id = %v, want abc", entry.Fields["run_id"])
	}
	if entry.Fields["ordinal"] != float64(3) {
		t.Errorf("ordinal = %v, want 3", entry.Fields["ordinal"])
	}
	if entry.Fields["monotonic"] != true {
		t.Errorf("monotonic = %v, want true", entry.Fields["monotonic"])
	}
	if entry.Fields["space_size"] != float64(9) {
		t.Errorf("space_size = %v, want 9", entry.Fields["space_size"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "error" {
		t.Errorf("Second entry level = %v, want error", entry.Level)
	}
}

func TestJSONLogger_WithSharesWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("filter"))
	child.Info("done", Count(18))
	logger.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Fields["component"] != "filter" {
		t.Errorf("component = %v, want filter", entry.Fields["component"])
	}
	if entry.Fields["count"] != float64(18) {
		t.Errorf("count = %v, want 18", entry.Fields["count"])
	}

	var parent LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &parent); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if parent.Fields != nil {
		t.Errorf("parent should carry no fields, got %v", parent.Fields)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	op := StartTimer(logger, "filter", Component("engine"))
	time.Sleep(time.Millisecond)
	if d := op.End(Count(2)); d <= 0 {
		t.Errorf("End() duration = %v, want > 0", d)
	}

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, ok := entry.Fields["latency"]; !ok {
		t.Error("latency field missing")
	}
	if entry.Fields["component"] != "engine" {
		t.Errorf("component = %v, want engine", entry.Fields["component"])
	}
}

func TestTimedOperation_EndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	StartTimer(logger, "export").EndError(errors.New("disk full"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if entry.Level != "error" {
		t.Errorf("Level = %v, want error", entry.Level)
	}
	if entry.Fields["error"] != "disk full" {
		t.Errorf("error = %v, want disk full", entry.Fields["error"])
	}
}

func TestJSONLogger_Enabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("engine"))

	if child.Enabled(DebugLevel) {
		t.Error("debug should be disabled at info level")
	}
	if !child.Enabled(InfoLevel) || !child.Enabled(ErrorLevel) {
		t.Error("info and above should be enabled")
	}
	child.Debug("dropped")
	if buf.Len() != 0 {
		t.Errorf("debug entry written: %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	if l.With(Count(1)) == nil {
		t.Error("With() returned nil")
	}
	if l.Enabled(ErrorLevel) {
		t.Error("NopLogger should report every level disabled")
	}
}
