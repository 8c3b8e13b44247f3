// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     conversion
// Description: Conversion request, voices and form validation
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package conversion

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/msto63/sprachwerk/pkg/core/config"
)

// Voice is one of the two logical voices offered by the form
type Voice string

const (
	VoicePrimary   Voice = "primary"
	VoiceSecondary Voice = "secondary"
)

// Voices lists the logical voices in form order
var Voices = []Voice{VoicePrimary, VoiceSecondary}

// Label returns the form label of the voice
func (v Voice) Label() string {
	switch v {
	case VoicePrimary:
		return "Stimme 1 (weiblich)"
	case VoiceSecondary:
		return "Stimme 2 (männlich)"
	default:
		return string(v)
	}
}

// ParseVoice accepts "primary" or "secondary" in any case
func ParseVoice(s string) (Voice, error) {
	switch Voice(strings.ToLower(strings.TrimSpace(s))) {
	case VoicePrimary:
		return VoicePrimary, nil
	case VoiceSecondary:
		return VoiceSecondary, nil
	default:
		return "", newError(CodeInvalidVoice, fmt.Sprintf("invalid voice %q: use primary or secondary", s), nil)
	}
}

// ParseSpeed parses a speed entry and checks the allowed range
func ParseSpeed(s string) (float64, error) {
	speed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, newError(CodeInvalidSpeed, fmt.Sprintf("invalid speed value %q, please enter a number", s), nil)
	}
	if math.IsNaN(speed) || speed < config.MinSpeed || speed > config.MaxSpeed {
		return 0, newError(CodeInvalidSpeed,
			fmt.Sprintf("speed must be between %.1f and %.1f", config.MinSpeed, config.MaxSpeed), nil)
	}
	return speed, nil
}

// FormInput holds the raw, unvalidated form values
type FormInput struct {
	Text       string
	Voice      string
	Speed      string
	OutputPath string
}

// Request is a validated conversion request. It is passed by value and
// not changed after it has been handed to the worker.
type Request struct {
	ID         string
	Text       string
	Voice      Voice
	Speed      float64
	OutputPath string
}

// TextPath returns the sibling text file of the request
func (r Request) TextPath() string {
	return TextPath(r.OutputPath)
}

// Validate turns form input into a Request. All rules are checked and
// every failure is reported in a *ValidationError.
func Validate(in FormInput) (Request, error) {
	var reasons []*Error

	speed, err := ParseSpeed(in.Speed)
	if err != nil {
		reasons = append(reasons, err.(*Error))
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		reasons = append(reasons, newError(CodeEmptyText, "no text input", nil))
	}

	output := strings.TrimSpace(in.OutputPath)
	if output == "" {
		reasons = append(reasons, newError(CodeNoOutputPath, "no output file specified", nil))
	} else if strings.EqualFold(filepath.Ext(output), ".txt") {
		reasons = append(reasons, newError(CodeOutputIsText,
			"output file must not be a .txt file, the text copy would overwrite it", nil))
	}

	voice, err := ParseVoice(in.Voice)
	if err != nil {
		reasons = append(reasons, err.(*Error))
	}

	if len(reasons) > 0 {
		return Request{}, &ValidationError{Reasons: reasons}
	}

	return Request{
		ID:         uuid.NewString(),
		Text:       text,
		Voice:      voice,
		Speed:      speed,
		OutputPath: output,
	}, nil
}
