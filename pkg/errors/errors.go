// Package errors provides structured error types for the gridkz application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Soft codes describe recoverable per-section problems inside a template
// (a bad expression drops one section, not the whole file). Hard codes
// describe failures that abort a conversion (nothing convertible, bad
// input, I/O).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownVariable, "unknown variable [%s]", name)
//	if errors.Is(err, errors.ErrCodeUnknownVariable) {
//	    // Handle lookup failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read template %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Expression-level errors (soft: drop the section, keep the file)
	ErrCodeInvalidExpression Code = "INVALID_EXPRESSION"
	ErrCodeUnknownVariable   Code = "UNKNOWN_VARIABLE"
	ErrCodeDivisionByZero    Code = "DIVISION_BY_ZERO"

	// Template-level errors (soft)
	ErrCodeIncompleteSection Code = "INCOMPLETE_SECTION"
	ErrCodeMalformedLine     Code = "MALFORMED_LINE"

	// Zone-level conditions (soft: the section yields no zone)
	ErrCodeEmptyZone Code = "EMPTY_ZONE"

	// Conversion-level errors (hard: the run fails)
	ErrCodeNoConvertibleZones Code = "NO_CONVERTIBLE_ZONES"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidVariable Code = "INVALID_VARIABLE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsSoft reports whether err carries one of the per-section codes that
// degrade to "drop this section and continue" during conversion.
func IsSoft(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidExpression,
		ErrCodeUnknownVariable,
		ErrCodeDivisionByZero,
		ErrCodeIncompleteSection,
		ErrCodeMalformedLine,
		ErrCodeEmptyZone:
		return true
	}
	return false
}
