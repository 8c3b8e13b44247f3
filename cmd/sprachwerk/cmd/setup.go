// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     cmd
// Description: Shared wiring of config, logger, backend and converter
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/msto63/sprachwerk/internal/speech"
	"github.com/msto63/sprachwerk/pkg/core/config"
	"github.com/msto63/sprachwerk/pkg/core/logging"
	"github.com/msto63/sprachwerk/pkg/core/version"
)

// loadConfig loads the --config file or the default locations
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if logFile != "" {
		cfg.General.LogFile = logFile
	}
	return cfg, nil
}

// newLogger creates the process logger. With toFile the log goes to the
// configured log file, otherwise to out.
func newLogger(cfg *config.Config, toFile bool, out io.Writer) (*logging.Logger, func() error, error) {
	lc := logging.LoggerConfig{
		Name:   "sprachwerk",
		Level:  cfg.General.LogLevel,
		Format: cfg.General.LogFormat,
		Output: out,
	}
	if toFile {
		lc.FilePath = cfg.General.LogFile
		if lc.FilePath == "" {
			lc.FilePath = logging.DefaultLogPath()
		}
	} else if logFile != "" {
		lc.FilePath = logFile
	}
	return logging.NewLogger(lc)
}

// newConverter builds the configured speech backend and its converter
func newConverter(cfg *config.Config, logger *logging.Logger) (*conversion.Converter, error) {
	synth, err := speech.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("speech backend %q: %w", cfg.Speech.Backend, err)
	}

	logger.Info("Speech backend ready", logging.Fields{
		"backend": synth.Name(),
		"model":   cfg.Speech.Model,
		"version": version.Version,
	})
	return conversion.NewConverter(synth, conversion.OptionsFromConfig(cfg), logger.WithField("component", "converter")), nil
}
