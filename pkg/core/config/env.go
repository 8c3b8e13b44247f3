// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     config
// Description: Environment overrides
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are applied after the file and beat its values
type envOverrides struct {
	Backend  string `env:"SPRACHWERK_BACKEND"`
	LogLevel string `env:"SPRACHWERK_LOG_LEVEL"`
	APIKey   string `env:"SPRACHWERK_OPENAI_API_KEY"`
	BaseURL  string `env:"SPRACHWERK_OPENAI_BASE_URL"`
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.Backend != "" {
		c.Speech.Backend = o.Backend
	}
	if o.LogLevel != "" {
		c.General.LogLevel = o.LogLevel
	}
	if o.APIKey != "" {
		c.OpenAI.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		c.OpenAI.BaseURL = o.BaseURL
	}
	return nil
}
