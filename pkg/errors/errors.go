// Package errors provides structured error types for the floorplanner.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - A clear split between malformed input and infeasible problems
//
// # Error Codes
//
// Codes fall into a few families:
//   - INVALID_* / PARSE_* / MALFORMED_*: the input could not be understood
//   - INFEASIBLE_* / UNSCORABLE: the input is fine but has no (scorable) answer
//   - NOT_FOUND / FILE_NOT_FOUND: resource lookups
//   - INTERNAL_*: unexpected internal errors
//
// A parse failure and an infeasible placement are different facts; callers
// should branch on the code, never on the message.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedGrid, "row %d has %d tiles, want %d", r, n, cols)
//	if errors.Is(err, errors.ErrCodeMalformedGrid) {
//	    // reject the problem file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "line %d", line)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeParse            Code = "PARSE_ERROR"
	ErrCodeMalformedGrid    Code = "MALFORMED_GRID"
	ErrCodeMalformedProblem Code = "MALFORMED_PROBLEM"
	ErrCodeInvalidStrategy  Code = "INVALID_STRATEGY"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Solver outcomes
	ErrCodeInfeasible Code = "INFEASIBLE_PLACEMENT"
	ErrCodeUnscorable Code = "UNSCORABLE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeTimeout Code = "TIMEOUT"
	ErrCodeBackend Code = "BACKEND_ERROR"

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

// coder is implemented by error types that carry a code without being *Error.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error (or any type with a
// Code method) with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// The outermost coded error in the chain wins.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err describes input that could not be
// understood, as opposed to a well-formed but unsolvable problem.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeParse, ErrCodeMalformedGrid,
		ErrCodeMalformedProblem, ErrCodeInvalidStrategy, ErrCodeInvalidPath,
		ErrCodeInvalidConfig:
		return true
	}
	return false
}
