// Package apperr defines the coded errors returned by the auth core and
// translated into HTTP responses at the handler boundary.
package apperr

import "errors"

// Error is the application error type with a code and optional details.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // User-facing summary
	Details any    // Field-level detail, safe to return to clients
	Cause   error  // Wrapped underlying error, never returned to clients outside development
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetails creates an error carrying client-visible details.
func WithDetails(code Code, message string, details any) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// From extracts an *Error from err, or wraps err as an internal failure.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(CodeInternalFailure, "Internal server error", err)
}

// CodeOf returns the code carried by err, or CodeInternalFailure. A nil
// error has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return From(err).Code
}
