package cmd

import (
	"fmt"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "Zeigt die Stimmenzuordnung an",
	Long: `Zeigt, welche Stimme des Sprachdienstes hinter den beiden
Formular-Stimmen steht. Die Zuordnung kommt aus der Config ([voices]).`,
	RunE: runVoices,
}

func init() {
	rootCmd.AddCommand(voicesCmd)
}

func runVoices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	opts := conversion.OptionsFromConfig(cfg)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Stimmen (Backend: %s, Modell: %s)\n", cfg.Speech.Backend, cfg.Speech.Model)
	fmt.Fprintln(out, "==========================================")
	for _, v := range conversion.Voices {
		marker := " "
		if string(v) == cfg.Form.DefaultVoice {
			marker = "*"
		}
		backend := opts.Voices[v]
		if backend == "" {
			backend = "(nicht konfiguriert)"
		}
		fmt.Fprintf(out, "%s %-10s %-22s %s\n", marker, v, v.Label(), backend)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "* = Standardstimme")
	return nil
}
