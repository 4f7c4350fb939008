// Package errors provides structured error types for gavtree.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Structural input problems abort a call immediately and carry one of
// [ErrCodeInvalidModel], [ErrCodeInvalidRepository], [ErrCodeOversizeInput] or
// [ErrCodeInvalidInput]. An unknown upstream coordinate is [ErrCodeNotFound].
// Node-level failures during resolution are never errors; they are embedded
// in the resolved tree as node statuses.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidModel, "missing artifactId")
//	if errors.Is(err, errors.ErrCodeInvalidModel) {
//	    // Handle malformed manifest
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidModel      Code = "INVALID_MODEL"
	ErrCodeInvalidRepository Code = "INVALID_REPOSITORY"
	ErrCodeOversizeInput     Code = "OVERSIZE_INPUT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// InvalidModel reports a malformed or incomplete manifest.
func InvalidModel(format string, args ...any) *Error {
	return New(ErrCodeInvalidModel, format, args...)
}

// InvalidRepository reports a rejected repository list or URL.
func InvalidRepository(format string, args ...any) *Error {
	return New(ErrCodeInvalidRepository, format, args...)
}

// NotFound reports a coordinate unknown to every configured repository.
func NotFound(cause error, format string, args ...any) *Error {
	return Wrap(ErrCodeNotFound, cause, format, args...)
}
