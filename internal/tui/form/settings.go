// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     form
// Description: Settings persistence for the conversion form
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package form

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/msto63/sprachwerk/pkg/core/config"
)

// Settings holds the values the form remembers between runs
type Settings struct {
	Voice     string  `yaml:"voice,omitempty"`
	Speed     float64 `yaml:"speed,omitempty"`
	OutputDir string  `yaml:"output_dir,omitempty"`
	TextDir   string  `yaml:"text_dir,omitempty"`
}

// DefaultSettingsPath returns ~/.config/sprachwerk/form.yaml
func DefaultSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "sprachwerk", "form.yaml"), nil
}

// LoadSettings reads the settings file. A missing file yields empty settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes the settings file, creating its directory
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// voiceOr returns the remembered voice, or fallback if none is stored
func (s Settings) voiceOr(fallback conversion.Voice) conversion.Voice {
	if v, err := conversion.ParseVoice(s.Voice); err == nil {
		return v
	}
	return fallback
}

// speedOr returns the remembered speed, or fallback if it is out of range
func (s Settings) speedOr(fallback float64) float64 {
	if s.Speed >= config.MinSpeed && s.Speed <= config.MaxSpeed {
		return s.Speed
	}
	return fallback
}
