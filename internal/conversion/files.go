// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     conversion
// Description: Output path derivation and text file loading
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package conversion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextPath replaces the final extension of audioPath with ".txt".
// Paths without extension get ".txt" appended. Dots in directory
// names are not extensions.
func TextPath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".txt"
}

// LoadTextFile returns the content of path unchanged
func LoadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(data), nil
}
