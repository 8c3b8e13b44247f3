// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     form
// Description: Message types for the conversion form
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package form

import (
	"github.com/msto63/sprachwerk/internal/conversion"
)

// Message types for tea.Cmd async operations

// conversionDoneMsg carries the worker result back to the update loop
type conversionDoneMsg struct {
	result conversion.Result
}

// fileLoadedMsg is sent when a source text file was read
type fileLoadedMsg struct {
	path string
	text string
	err  error
}

// settingsSavedMsg is sent after the form settings were written
type settingsSavedMsg struct {
	err error
}

// noticeKind distinguishes informational notices from errors
type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeError
)

// notice is a modal message that must be dismissed
type notice struct {
	kind  noticeKind
	title string
	body  string
}
