// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logging
// Description: Factory functions for application loggers
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Name of the component, rendered as {name}
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json" or "text"
	Format string

	// FilePath receives log output when set. Output is used otherwise.
	FilePath string

	// Output is the fallback writer (default: stderr)
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
	}
}

// DefaultLogPath returns the log file used by the terminal form.
// The form owns stdout, so its logs go to a file under the user state dir.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "sprachwerk", "sprachwerk.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sprachwerk.log")
	}
	return filepath.Join(home, ".local", "state", "sprachwerk", "sprachwerk.log")
}

// NewLogger creates a logger from cfg. The returned close function
// releases the log file, if one was opened.
func NewLogger(cfg LoggerConfig) (*Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() error { return nil }
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
		closeFn = f.Close
	}

	logger := NewWithConfig(Config{
		Name:   cfg.Name,
		Level:  level,
		Format: format,
		Output: output,
	})
	return logger, closeFn, nil
}
