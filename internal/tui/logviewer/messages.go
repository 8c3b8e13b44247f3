// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logviewer
// Description: Message types for async operations in the log viewer
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logviewer

import (
	"time"

	"github.com/msto63/sprachwerk/pkg/core/logging"
)

// Message types for tea.Cmd async operations

// logsLoadedMsg is sent when the log file was read
type logsLoadedMsg struct {
	entries []logging.Entry
	skipped int
	err     error
}

// tickMsg is used for periodic reloads
type tickMsg time.Time
