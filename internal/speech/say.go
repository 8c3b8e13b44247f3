// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     speech
// Description: macOS say TTS backend
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// SayConfig holds macOS say backend configuration
type SayConfig struct {
	// BinaryPath is the say executable (default: say)
	BinaryPath string

	// Rate in words per minute at speed 1.0
	Rate int
}

// Say implements text-to-speech using the built-in macOS say command.
// The request voice is a system voice name such as "Anna".
type Say struct {
	binaryPath string
	rate       int
}

// NewSay creates a new say synthesizer
func NewSay(cfg SayConfig) (*Say, error) {
	path := cfg.BinaryPath
	if path == "" {
		path = "say"
	}
	binary, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("say binary not found: %s", path)
	}

	rate := cfg.Rate
	if rate <= 0 {
		rate = 175
	}

	return &Say{binaryPath: binary, rate: rate}, nil
}

func (s *Say) Name() string { return "say" }

// Rate returns the effective words per minute for a speed factor
func (s *Say) Rate(speed float64) int {
	if speed <= 0 {
		speed = 1.0
	}
	return int(math.Round(float64(s.rate) * speed))
}

// Synthesize renders the text into a temporary WAV file and returns its
// content. The temporary file is removed before returning.
func (s *Say) Synthesize(ctx context.Context, req Request) (io.ReadCloser, error) {
	if req.Voice == "" {
		return nil, fmt.Errorf("say voice is required")
	}

	tmpDir, err := os.MkdirTemp("", "sprachwerk-say-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	out := filepath.Join(tmpDir, "speech.wav")
	args := []string{
		"-v", req.Voice,
		"-r", strconv.Itoa(s.Rate(req.Speed)),
		"-o", out,
		"--file-format=WAVE",
		"--data-format=LEI16@22050",
		"-f", "-",
	}

	cmd := exec.CommandContext(ctx, s.binaryPath, args...)
	cmd.Stdin = strings.NewReader(req.Input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("say failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read say output: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
