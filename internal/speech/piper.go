// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     speech
// Description: Piper TTS backend
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
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// PiperConfig holds Piper backend configuration
type PiperConfig struct {
	// BinaryPath is the piper executable, absolute or looked up in PATH
	BinaryPath string

	// SampleRate of the voice models (Piper default: 22050)
	SampleRate int
}

// Piper implements text-to-speech using the Piper binary.
// The request voice is the path of the .onnx model to use.
type Piper struct {
	binaryPath string
	sampleRate int
	espeakData string
}

// NewPiper creates a new Piper synthesizer
func NewPiper(cfg PiperConfig) (*Piper, error) {
	if cfg.BinaryPath == "" {
		return nil, fmt.Errorf("piper binary path is required")
	}
	binary, err := exec.LookPath(cfg.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("piper binary not found: %s", cfg.BinaryPath)
	}

	// espeak-ng-data ships next to the binary in release archives
	espeakData := filepath.Join(filepath.Dir(binary), "espeak-ng-data")
	if _, err := os.Stat(espeakData); err != nil {
		espeakData = ""
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 22050
	}

	return &Piper{
		binaryPath: binary,
		sampleRate: sampleRate,
		espeakData: espeakData,
	}, nil
}

func (p *Piper) Name() string { return "piper" }

// SampleRate returns the output sample rate
func (p *Piper) SampleRate() int { return p.sampleRate }

// Synthesize pipes the text into Piper and wraps the raw PCM output
// into a WAV container. Format and Model of the request are ignored.
func (p *Piper) Synthesize(ctx context.Context, req Request) (io.ReadCloser, error) {
	if req.Voice == "" {
		return nil, fmt.Errorf("piper voice model path is required")
	}
	if _, err := os.Stat(req.Voice); err != nil {
		return nil, fmt.Errorf("piper model not found: %s", req.Voice)
	}

	cmd := exec.CommandContext(ctx, p.binaryPath, p.args(req)...)
	cmd.Stdin = strings.NewReader(req.Input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = filepath.Dir(p.binaryPath)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("DYLD_LIBRARY_PATH=%s", filepath.Dir(p.binaryPath)),
		fmt.Sprintf("LD_LIBRARY_PATH=%s", filepath.Dir(p.binaryPath)),
	)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	wav := EncodeWAV(stdout.Bytes(), p.sampleRate)
	return io.NopCloser(bytes.NewReader(wav)), nil
}

func (p *Piper) args(req Request) []string {
	args := []string{"--model", req.Voice, "--output_raw"}

	// Config file sits next to the model
	if _, err := os.Stat(req.Voice + ".json"); err == nil {
		args = append(args, "--config", req.Voice+".json")
	}
	if p.espeakData != "" {
		args = append(args, "--espeak_data", p.espeakData)
	}

	// Piper stretches phoneme length, so speed 2.0 means length 0.5
	if req.Speed > 0 && req.Speed != 1.0 {
		args = append(args, "--length_scale", strconv.FormatFloat(1/req.Speed, 'f', 3, 64))
	}
	return args
}
