// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     conversion
// Description: Coded errors for validation and conversion
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package conversion

import (
	"errors"
	"strings"
)

// Code classifies a conversion error
type Code string

const (
	// Validation
	CodeInvalidSpeed Code = "INVALID_SPEED"
	CodeEmptyText    Code = "EMPTY_TEXT"
	CodeNoOutputPath Code = "NO_OUTPUT_PATH"
	CodeOutputIsText Code = "OUTPUT_IS_TEXT"
	CodeInvalidVoice Code = "INVALID_VOICE"

	// Worker
	CodeServiceError   Code = "SERVICE_ERROR"
	CodeFileWriteError Code = "FILE_WRITE_ERROR"
	CodeInProgress     Code = "CONVERSION_IN_PROGRESS"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Error is an error with a Code and an optional cause
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func newError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so sentinel values like
// ErrConversionInProgress work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// ErrConversionInProgress is returned when a conversion is started
// while another one is still running
var ErrConversionInProgress = &Error{Code: CodeInProgress, Message: "conversion already in progress"}

// CodeOf returns the code of the first *Error in err's chain, or "" if none
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ValidationError holds every reason a form submission was rejected
type ValidationError struct {
	Reasons []*Error
}

func (v *ValidationError) Error() string {
	msgs := make([]string, len(v.Reasons))
	for i, r := range v.Reasons {
		msgs[i] = r.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether one of the reasons carries code
func (v *ValidationError) Has(code Code) bool {
	for _, r := range v.Reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}
