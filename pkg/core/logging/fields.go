// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logging
// Description: Structured log fields and entries
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"time"
)

// Fields holds structured key-value data attached to a log entry
type Fields map[string]interface{}

// String creates a single string field
func String(key, value string) Fields { return Fields{key: value} }

// Int64 creates a single int64 field
func Int64(key string, value int64) Fields { return Fields{key: value} }

// Float64 creates a single float64 field
func Float64(key string, value float64) Fields { return Fields{key: value} }

// Bool creates a single bool field
func Bool(key string, value bool) Fields { return Fields{key: value} }

// Duration creates a duration field rendered as a string
func Duration(key string, d time.Duration) Fields { return Fields{key: d.String()} }

// Err creates an error field
func Err(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

// Merge returns a new Fields with other layered on top of f
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Entry is a single log record handed to a Formatter
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
}
