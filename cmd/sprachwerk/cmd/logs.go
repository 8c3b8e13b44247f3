// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the log viewer
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/msto63/sprachwerk/internal/tui/logviewer"
	"github.com/msto63/sprachwerk/pkg/core/logging"
	"github.com/spf13/cobra"
)

var logsMaxEntries int

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log", "logviewer"},
	Short:   "Zeigt das Sprachwerk-Log an",
	Long: `Zeigt die Log-Datei des Formulars an und aktualisiert sie laufend.

Tastenkuerzel:
  1-4         Level DEBUG/INFO/WARN/ERROR ein-/ausblenden
  0           Alle Level anzeigen
  /           In Nachrichten suchen (Esc hebt die Suche auf)
  p, Leertaste Pause
  r           Neu laden
  a           Auto-Scroll
  g/G         Anfang/Ende
  q           Beenden`,
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVar(&logsMaxEntries, "max", 1000, "Maximale Anzahl angezeigter Eintraege")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	lc := logviewer.DefaultConfig()
	lc.MaxEntries = logsMaxEntries
	if cfg.General.LogFile != "" {
		lc.Path = cfg.General.LogFile
	} else {
		lc.Path = logging.DefaultLogPath()
	}

	return logviewer.Run(lc)
}
