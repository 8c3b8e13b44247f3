// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     form
// Description: Styles for the conversion form
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package form

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminals
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"} // Teal
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"} // Amber
	ColorOK      = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorFail    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#3F3F46"}

	ColorButtonBg   = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#27272A"}
	ColorForeground = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#FAFAFA"}
	ColorSubtle     = lipgloss.AdaptiveColor{Light: "#71717A", Dark: "#A1A1AA"}
	ColorFaint      = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#52525B"}
)

var (
	LogoStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	TitlePanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderBottom(true).
			BorderForeground(ColorPrimary).
			PaddingLeft(1).
			MarginBottom(1)
)

// Field styles
var (
	LabelStyle        = lipgloss.NewStyle().Foreground(ColorSubtle)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	FieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			PaddingLeft(1)

	FieldFocusedStyle = FieldStyle.BorderForeground(ColorAccent)

	VoiceStyle         = lipgloss.NewStyle().Foreground(ColorFaint)
	VoiceSelectedStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
)

// Buttons
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorButtonBg).
			Padding(0, 3)

	ButtonFocusedStyle  = ButtonStyle.Background(ColorPrimary).Bold(true)
	ButtonDisabledStyle = ButtonStyle.Foreground(ColorFaint)
)

// Notices
var (
	noticeBase = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(1, 3)

	NoticeInfoStyle       = noticeBase.BorderForeground(ColorOK)
	NoticeErrorStyle      = noticeBase.BorderForeground(ColorFail)
	NoticeInfoTitleStyle  = lipgloss.NewStyle().Foreground(ColorOK).Bold(true).Underline(true)
	NoticeErrorTitleStyle = lipgloss.NewStyle().Foreground(ColorFail).Bold(true).Underline(true)
)

var (
	HelpStyle          = lipgloss.NewStyle().Foreground(ColorSubtle).PaddingTop(1)
	HelpKeyStyle       = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle      = lipgloss.NewStyle().Foreground(ColorFaint)
	StatusRunningStyle = lipgloss.NewStyle().Foreground(ColorAccent).Italic(true)
)

const Logo = "♪ Sprachwerk"

// RenderKeyHint renders "key description" for the help line
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render("<"+key+">") + " " + HelpDescStyle.Render(description)
}

// RenderRadio renders one option of the voice choice
func RenderRadio(label string, selected bool) string {
	if !selected {
		return VoiceStyle.Render("○ " + label)
	}
	return VoiceSelectedStyle.Render("● " + label)
}
