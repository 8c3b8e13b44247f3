package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "sprachwerk",
	Short: "Sprachwerk - Text in Sprache umwandeln",
	Long: `Sprachwerk wandelt Text in gesprochene Sprache um.

Ohne Unterbefehl startet das interaktive Formular:
  - Text eingeben oder aus einer Datei laden
  - Stimme und Sprechgeschwindigkeit (0.5-2.0) waehlen
  - Ausgabedatei angeben und konvertieren

Neben der Audiodatei wird eine gleichnamige .txt-Datei mit dem
Quelltext geschrieben.

Tastenkuerzel:
  Tab/Shift+Tab  Naechstes/Vorheriges Feld
  Ctrl+O         Textdatei laden
  Ctrl+R         Konvertieren
  Ctrl+Q         Beenden`,
	SilenceUsage: true,
	RunE:         runForm,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/sprachwerk.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log-Datei (default: ~/.local/state/sprachwerk/sprachwerk.log)")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
