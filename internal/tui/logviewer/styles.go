// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logviewer
// Description: Styles for the log viewer
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logviewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/sprachwerk/pkg/core/logging"
)

// Color palette, shared with the form
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
)

// Log entry styles
var (
	LogTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	LogRequestStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	LogMessageStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	LogErrorTextStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	LogLevelDebugStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Bold(true)

	LogLevelInfoStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	LogLevelWarnStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	LogLevelErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

var (
	LogPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Logo
const Logo = "Sprachwerk Log"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderLevelBadge renders a log level badge
func RenderLevelBadge(level logging.Level) string {
	badge := "[" + level.ShortString() + "]"
	switch level {
	case logging.LevelTrace, logging.LevelDebug:
		return LogLevelDebugStyle.Render(badge)
	case logging.LevelInfo:
		return LogLevelInfoStyle.Render(badge)
	case logging.LevelWarn:
		return LogLevelWarnStyle.Render(badge)
	default:
		return LogLevelErrorStyle.Render(badge)
	}
}

// RenderFilterStatus renders a filter toggle
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}
