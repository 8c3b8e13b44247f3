package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Name: "test", Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestLogger_JSONEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Name: "worker", Level: LevelDebug, Format: FormatJSON, Output: &buf})

	logger.WithRequestID("req-1").WithField("voice", "onyx").
		ErrorWithErr("synthesis failed", errors.New("boom"), Int64("bytes", 0))

	var data map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}

	checks := map[string]interface{}{
		"level":      "error",
		"message":    "synthesis failed",
		"logger":     "worker",
		"request_id": "req-1",
		"voice":      "onyx",
		"error":      "boom",
		"bytes":      float64(0),
	}
	for k, want := range checks {
		if data[k] != want {
			t.Errorf("%s = %v, want %v", k, data[k], want)
		}
	}
}

func TestLogger_WithFieldsDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithConfig(Config{Level: LevelInfo, Format: FormatText, Output: &buf})
	_ = base.WithField("child", true)

	base.Info("plain")
	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent logger picked up child field: %q", buf.String())
	}
}

func TestTimer_Stop(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelDebug, Format: FormatText, Output: &buf})

	timer := logger.StartTimer("synthesize")
	timer.Stop()
	if timer.Stop() != 0 {
		t.Error("second Stop should return 0")
	}

	if strings.Count(buf.String(), "synthesize completed") != 1 {
		t.Errorf("expected exactly one completion entry, got %q", buf.String())
	}
}

func TestTimer_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	logger.StartTimer("write").StopWithError(errors.New("disk full"))

	out := buf.String()
	if !strings.Contains(out, "write failed") || !strings.Contains(out, "disk full") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNop(t *testing.T) {
	// Should not panic
	Nop().Error("dropped")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	logger, closeFn, err := NewLogger(LoggerConfig{Name: "form", Level: "info", Format: "text", FilePath: path})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "{form} hello") {
		t.Errorf("log file content = %q", string(data))
	}
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	if _, _, err := NewLogger(LoggerConfig{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, _, err := NewLogger(LoggerConfig{Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}
