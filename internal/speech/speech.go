// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     speech
// Description: Text-to-Speech synthesizer interface and backend factory
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/msto63/sprachwerk/pkg/core/config"
)

// Request holds the parameters of one synthesis call
type Request struct {
	// Model is the fixed model identifier (e.g. "tts-1")
	Model string

	// Voice is the backend voice: an OpenAI voice name, a Piper model path
	// or a macOS voice name
	Voice string

	// Speed is the speech speed (1.0 = normal)
	Speed float64

	// Input is the text to speak
	Input string

	// Format is the requested audio container (e.g. "mp3")
	Format string
}

// Synthesizer is the interface for text-to-speech engines
type Synthesizer interface {
	// Synthesize converts text to an audio stream. The caller closes it.
	Synthesize(ctx context.Context, req Request) (io.ReadCloser, error)

	// Name identifies the backend in logs
	Name() string
}

// New creates the synthesizer selected by cfg.Speech.Backend
func New(cfg *config.Config) (Synthesizer, error) {
	switch cfg.Speech.Backend {
	case config.BackendOpenAI:
		return NewOpenAI(OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.Speech.Timeout.Duration,
		})
	case config.BackendPiper:
		return NewPiper(PiperConfig{
			BinaryPath: cfg.Piper.Binary,
			SampleRate: cfg.Piper.SampleRate,
		})
	case config.BackendSay:
		return NewSay(SayConfig{
			BinaryPath: cfg.Say.Binary,
			Rate:       cfg.Say.Rate,
		})
	default:
		return nil, fmt.Errorf("unknown speech backend: %q", cfg.Speech.Backend)
	}
}
