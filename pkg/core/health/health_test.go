package health

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("test-checker", func(ctx context.Context) CheckResult {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "test passed",
		}
	})

	if checker.Name() != "test-checker" {
		t.Errorf("Name() = %v, want test-checker", checker.Name())
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
}

func fixed(status Status) func(ctx context.Context) CheckResult {
	return func(ctx context.Context) CheckResult {
		return CheckResult{Status: status}
	}
}

func TestRegistry_OverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		expected Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			for i, s := range tt.statuses {
				r.RegisterFunc(string(rune('a'+i)), fixed(s))
			}

			report := r.Check(context.Background())
			if report.Status != tt.expected {
				t.Errorf("Status = %v, want %v", report.Status, tt.expected)
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Errorf("Checks = %d, want %d", len(report.Checks), len(tt.statuses))
			}
		})
	}
}

func TestRegistry_KeepsOrderAndNames(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int32
	for _, name := range []string{"config", "backend", "voices", "log-dir"} {
		r.RegisterFunc(name, func(ctx context.Context) CheckResult {
			calls.Add(1)
			time.Sleep(time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		})
	}

	report := r.CheckWithTimeout(time.Second)
	if calls.Load() != 4 {
		t.Errorf("calls = %d, want 4", calls.Load())
	}
	for i, want := range []string{"config", "backend", "voices", "log-dir"} {
		if report.Checks[i].Name != want {
			t.Errorf("Checks[%d].Name = %v, want %v", i, report.Checks[i].Name, want)
		}
	}
}

func TestDirWritableCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "dir")

	result := DirWritableCheck("out", dir).Check(context.Background())
	if result.Status != StatusHealthy {
		t.Fatalf("Status = %v (%s), want healthy", result.Status, result.Message)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("temporary check file should be removed, found %d entries", len(entries))
	}
}

func TestFileExistsCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "voice.onnx")
	os.WriteFile(file, []byte("model"), 0644)

	tests := []struct {
		name     string
		path     string
		expected Status
	}{
		{"existing file", file, StatusHealthy},
		{"missing", filepath.Join(dir, "missing.onnx"), StatusUnhealthy},
		{"directory", dir, StatusUnhealthy},
		{"empty", "", StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileExistsCheck("model", tt.path).Check(context.Background()); got.Status != tt.expected {
				t.Errorf("Status = %v, want %v", got.Status, tt.expected)
			}
		})
	}
}

func TestBinaryCheck(t *testing.T) {
	if got := BinaryCheck("missing", "sprachwerk-no-such-binary").Check(context.Background()); got.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", got.Status)
	}
}
