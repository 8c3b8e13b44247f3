package cmd

import (
	"os"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/msto63/sprachwerk/internal/tui/form"
	"github.com/spf13/cobra"
)

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	// The form owns the terminal, logs go to a file
	logger, closeLog, err := newLogger(cfg, true, os.Stderr)
	if err != nil {
		printError("Logger konnte nicht erstellt werden", err)
		return err
	}
	defer closeLog()

	conv, err := newConverter(cfg, logger)
	if err != nil {
		printError("Sprachdienst nicht verfuegbar", err)
		return err
	}

	settingsPath := cfg.Form.SettingsFile
	if settingsPath == "" {
		if settingsPath, err = form.DefaultSettingsPath(); err != nil {
			logger.WarnWithErr("No settings path, form settings are not kept", err)
		}
	}

	defaultVoice, _ := conversion.ParseVoice(cfg.Form.DefaultVoice)

	logger.Info("Starting form")
	err = form.Run(form.Config{
		Converter:    conv,
		DefaultVoice: defaultVoice,
		DefaultSpeed: cfg.Form.DefaultSpeed,
		SettingsPath: settingsPath,
		Logger:       logger.WithField("component", "form"),
		AudioExt:     cfg.AudioExtension(),
	})
	if err != nil {
		logger.ErrorWithErr("Form terminated with error", err)
	}
	return err
}
