// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     cmd
// Description: Preflight check of config, speech backend and directories
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/msto63/sprachwerk/internal/speech"
	"github.com/msto63/sprachwerk/internal/tui/form"
	"github.com/msto63/sprachwerk/pkg/core/config"
	"github.com/msto63/sprachwerk/pkg/core/health"
	"github.com/msto63/sprachwerk/pkg/core/logging"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Prueft Konfiguration, Sprachdienst und Verzeichnisse",
	Long: `Prueft, ob eine Konvertierung moeglich ist, ohne den Sprachdienst
aufzurufen:

  - Sprachdienst laesst sich anlegen (API-Key, Piper- bzw. say-Binary)
  - Beide Stimmen sind zugeordnet (bei Piper: Modelldateien vorhanden)
  - Log- und Einstellungsverzeichnis sind beschreibbar`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	report := newCheckRegistry(cfg).CheckWithTimeout(10 * time.Second)
	printReport(cmd.OutOrStdout(), report)

	if report.Status == health.StatusUnhealthy {
		return fmt.Errorf("check failed")
	}
	return nil
}

// newCheckRegistry registers the checks for cfg
func newCheckRegistry(cfg *config.Config) *health.Registry {
	r := health.NewRegistry()

	r.RegisterFunc("backend", func(ctx context.Context) health.CheckResult {
		synth, err := speech.New(cfg)
		if err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		msg := synth.Name() + ", Modell " + cfg.Speech.Model
		if cfg.Speech.Backend == config.BackendOpenAI && cfg.OpenAI.APIKey == "" {
			return health.CheckResult{Status: health.StatusDegraded, Message: msg + ", ohne API-Key"}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: msg}
	})

	opts := conversion.OptionsFromConfig(cfg)
	for _, v := range conversion.Voices {
		name := "voice-" + string(v)
		if cfg.Speech.Backend == config.BackendPiper {
			r.Register(health.FileExistsCheck(name, opts.Voices[v]))
			continue
		}
		backendVoice := opts.Voices[v]
		r.RegisterFunc(name, func(ctx context.Context) health.CheckResult {
			if backendVoice == "" {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: "nicht konfiguriert"}
			}
			return health.CheckResult{Status: health.StatusHealthy, Message: backendVoice}
		})
	}

	logPath := cfg.General.LogFile
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}
	r.Register(health.DirWritableCheck("log-dir", filepath.Dir(logPath)))

	settingsPath := cfg.Form.SettingsFile
	if settingsPath == "" {
		settingsPath, _ = form.DefaultSettingsPath()
	}
	if settingsPath != "" {
		r.Register(health.DirWritableCheck("settings-dir", filepath.Dir(settingsPath)))
	}

	return r
}

func printReport(out io.Writer, report *health.Report) {
	fmt.Fprintln(out, "Sprachwerk Check")
	fmt.Fprintln(out, "================")
	for _, c := range report.Checks {
		fmt.Fprintf(out, "  %-14s %-10s %s\n", c.Name, c.Status, c.Message)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Gesamt: %s\n", report.Status)
}
