// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     config
// Description: TOML configuration for the speech form
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in [speech].backend
const (
	BackendOpenAI = "openai"
	BackendPiper  = "piper"
	BackendSay    = "say"
)

// Speed bounds shared by config validation and the form
const (
	MinSpeed = 0.5
	MaxSpeed = 2.0
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Speech  SpeechConfig  `toml:"speech"`
	OpenAI  OpenAIConfig  `toml:"openai"`
	Piper   PiperConfig   `toml:"piper"`
	Say     SayConfig     `toml:"say"`
	Voices  VoicesConfig  `toml:"voices"`
	Form    FormConfig    `toml:"form"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
}

// SpeechConfig selects the synthesis backend and its fixed parameters
type SpeechConfig struct {
	Backend        string   `toml:"backend"`
	Model          string   `toml:"model"`
	ResponseFormat string   `toml:"response_format"`
	Timeout        Duration `toml:"timeout"`
}

// OpenAIConfig holds credentials for the OpenAI speech endpoint
type OpenAIConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// PiperConfig holds settings for the local Piper binary
type PiperConfig struct {
	Binary     string `toml:"binary"`
	SampleRate int    `toml:"sample_rate"`
}

// SayConfig holds settings for the macOS say command
type SayConfig struct {
	Binary string `toml:"binary"`
	// Rate is the speaking rate in words per minute at speed 1.0
	Rate int `toml:"rate"`
}

// VoicesConfig maps the two logical voices to backend voices.
// Primary/Secondary are OpenAI voice names, the *Model fields are
// Piper .onnx model paths, the *Say fields are macOS voice names.
type VoicesConfig struct {
	Primary        string `toml:"primary"`
	Secondary      string `toml:"secondary"`
	PrimaryModel   string `toml:"primary_model"`
	SecondaryModel string `toml:"secondary_model"`
	PrimarySay     string `toml:"primary_say"`
	SecondarySay   string `toml:"secondary_say"`
}

// FormConfig holds the initial form values
type FormConfig struct {
	DefaultVoice string  `toml:"default_voice"`
	DefaultSpeed float64 `toml:"default_speed"`
	SettingsFile string  `toml:"settings_file"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultTimeout bounds a conversion when speech.timeout is not set.
// An explicit "0s" disables the limit.
const DefaultTimeout = 120 * time.Second

// newConfig returns a Config carrying the defaults that a zero value in
// the file must not override
func newConfig() *Config {
	return &Config{
		Speech: SpeechConfig{Timeout: Duration{DefaultTimeout}},
	}
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := newConfig()
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := newConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finish(cfg)
}

// LoadDefault loads the first config file found in the default locations.
// Without any file the built-in defaults are used.
func LoadDefault() (*Config, error) {
	if path := os.Getenv("SPRACHWERK_CONFIG"); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return finish(newConfig())
}

// DefaultPaths lists the config file locations searched by LoadDefault
func DefaultPaths() []string {
	paths := []string{
		"./configs/sprachwerk.toml",
		"./sprachwerk.toml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "sprachwerk", "config.toml"))
	}
	return paths
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Speech
	if c.Speech.Backend == "" {
		c.Speech.Backend = BackendOpenAI
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "tts-1"
	}
	if c.Speech.ResponseFormat == "" {
		c.Speech.ResponseFormat = "mp3"
	}

	// OpenAI
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = "${OPENAI_API_KEY}"
	}

	// Piper
	if c.Piper.Binary == "" {
		c.Piper.Binary = "piper"
	}
	if c.Piper.SampleRate == 0 {
		c.Piper.SampleRate = 22050
	}

	// Say
	if c.Say.Binary == "" {
		c.Say.Binary = "say"
	}
	if c.Say.Rate == 0 {
		c.Say.Rate = 175
	}

	// Voices
	if c.Voices.Primary == "" {
		c.Voices.Primary = "alloy"
	}
	if c.Voices.Secondary == "" {
		c.Voices.Secondary = "onyx"
	}
	if c.Voices.PrimarySay == "" {
		c.Voices.PrimarySay = "Anna"
	}
	if c.Voices.SecondarySay == "" {
		c.Voices.SecondarySay = "Markus"
	}

	// Form
	if c.Form.DefaultVoice == "" {
		c.Form.DefaultVoice = "secondary"
	}
	if c.Form.DefaultSpeed == 0 {
		c.Form.DefaultSpeed = 1.0
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.OpenAI.APIKey = os.ExpandEnv(c.OpenAI.APIKey)
	c.OpenAI.BaseURL = os.ExpandEnv(c.OpenAI.BaseURL)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Piper.Binary = os.ExpandEnv(c.Piper.Binary)
	c.Say.Binary = os.ExpandEnv(c.Say.Binary)
	c.Voices.PrimaryModel = os.ExpandEnv(c.Voices.PrimaryModel)
	c.Voices.SecondaryModel = os.ExpandEnv(c.Voices.SecondaryModel)
	c.Form.SettingsFile = os.ExpandEnv(c.Form.SettingsFile)
}

// AudioExtension returns the file extension matching the audio the
// configured backend produces, without the leading dot
func (c *Config) AudioExtension() string {
	switch c.Speech.Backend {
	case BackendPiper, BackendSay:
		return "wav"
	}
	if c.Speech.ResponseFormat == "" {
		return "mp3"
	}
	return c.Speech.ResponseFormat
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	var problems []string

	switch c.Speech.Backend {
	case BackendOpenAI, BackendPiper, BackendSay:
	default:
		problems = append(problems, fmt.Sprintf("speech.backend must be %q, %q or %q, got %q",
			BackendOpenAI, BackendPiper, BackendSay, c.Speech.Backend))
	}

	if c.Speech.Timeout.Duration < 0 {
		problems = append(problems, "speech.timeout must not be negative")
	}

	if c.Piper.SampleRate <= 0 {
		problems = append(problems, "piper.sample_rate must be positive")
	}

	if c.Say.Rate <= 0 {
		problems = append(problems, "say.rate must be positive")
	}

	switch c.Form.DefaultVoice {
	case "primary", "secondary":
	default:
		problems = append(problems, fmt.Sprintf("form.default_voice must be primary or secondary, got %q",
			c.Form.DefaultVoice))
	}

	if c.Form.DefaultSpeed < MinSpeed || c.Form.DefaultSpeed > MaxSpeed {
		problems = append(problems, fmt.Sprintf("form.default_speed must be between %.1f and %.1f, got %v",
			MinSpeed, MaxSpeed, c.Form.DefaultSpeed))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
