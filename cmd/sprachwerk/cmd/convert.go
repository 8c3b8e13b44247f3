// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     cmd
// Description: Non-interactive conversion command
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/msto63/sprachwerk/internal/conversion"
	"github.com/spf13/cobra"
)

var (
	convertText   string
	convertFile   string
	convertVoice  string
	convertSpeed  string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Text ohne Formular in Sprache umwandeln",
	Long: `Wandelt einen Text in eine Audiodatei um, ohne das Formular zu oeffnen.
Neben der Audiodatei wird eine .txt-Datei mit dem Quelltext geschrieben.

Beispiele:
  sprachwerk convert --text "Hallo Welt" --output hallo.mp3
  sprachwerk convert --file brief.txt --voice primary --speed 1.25 --output brief.mp3`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertText, "text", "t", "", "Text zur Umwandlung")
	convertCmd.Flags().StringVarP(&convertFile, "file", "f", "", "Textdatei zur Umwandlung")
	convertCmd.Flags().StringVar(&convertVoice, "voice", "", "Stimme: primary oder secondary (default aus Config)")
	convertCmd.Flags().StringVarP(&convertSpeed, "speed", "s", "", "Sprechgeschwindigkeit 0.5-2.0 (default aus Config)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Ausgabedatei (z.B. ausgabe.mp3)")
	convertCmd.MarkFlagsMutuallyExclusive("text", "file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration konnte nicht geladen werden", err)
		return err
	}

	logger, closeLog, err := newLogger(cfg, false, os.Stderr)
	if err != nil {
		printError("Logger konnte nicht erstellt werden", err)
		return err
	}
	defer closeLog()

	text := convertText
	if convertFile != "" {
		if text, err = conversion.LoadTextFile(convertFile); err != nil {
			printError("Textdatei konnte nicht gelesen werden", err)
			return err
		}
	}

	in := conversion.FormInput{
		Text:       text,
		Voice:      convertVoice,
		Speed:      convertSpeed,
		OutputPath: convertOutput,
	}
	if in.Voice == "" {
		in.Voice = cfg.Form.DefaultVoice
	}
	if in.Speed == "" {
		in.Speed = strconv.FormatFloat(cfg.Form.DefaultSpeed, 'f', -1, 64)
	}

	conv, err := newConverter(cfg, logger)
	if err != nil {
		printError("Sprachdienst nicht verfuegbar", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return runConversion(ctx, conv, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runConversion validates in, runs one conversion and reports the outcome
func runConversion(ctx context.Context, conv *conversion.Converter, in conversion.FormInput, stdout, stderr io.Writer) error {
	req, err := conversion.Validate(in)
	if err != nil {
		var verr *conversion.ValidationError
		if errors.As(err, &verr) {
			for _, r := range verr.Reasons {
				fmt.Fprintf(stderr, "Ungueltige Eingabe [%s]: %s\n", r.Code, r.Message)
			}
		}
		return err
	}

	res := conv.Convert(ctx, req)
	if !res.OK() {
		fmt.Fprintf(stderr, "Konvertierung fehlgeschlagen: %v\n", res.Err)
		return res.Err
	}

	fmt.Fprintln(stdout, "Konvertierung abgeschlossen")
	fmt.Fprintf(stdout, "  Audio: %s (%d Bytes)\n", res.AudioPath, res.Bytes)
	fmt.Fprintf(stdout, "  Text:  %s\n", res.TextPath)
	fmt.Fprintf(stdout, "  Dauer: %s\n", res.Duration.Round(time.Millisecond))
	return nil
}
