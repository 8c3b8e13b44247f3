// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     speech
// Description: OpenAI speech backend
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds OpenAI backend configuration
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// OpenAI synthesizes speech through the /audio/speech endpoint
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI creates an OpenAI synthesizer. An empty API key is only
// accepted together with a custom base URL, for OpenAI-compatible local
// servers that do not authenticate.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai api key is required (set OPENAI_API_KEY)")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &OpenAI{client: openai.NewClientWithConfig(clientCfg)}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Synthesize performs one speech request and returns the response body
func (o *OpenAI) Synthesize(ctx context.Context, req Request) (io.ReadCloser, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          req.Input,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormat(req.Format),
		Speed:          req.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	return resp, nil
}
