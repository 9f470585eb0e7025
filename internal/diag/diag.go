// Package diag provides structured diagnostics for configuration
// validation: coded errors with suggestions for fatal problems, and
// coded warnings surfaced through slog for recoverable ones.
package diag

import (
	"fmt"
	"log/slog"
)

// Category represents the type of diagnostic.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRuntime Category = "runtime"
)

// Error is a structured error with a stable code and a fix suggestion.
type Error struct {
	// Code is a unique diagnostic identifier (e.g. "P001").
	Code string

	// Category is the diagnostic type.
	Category Category

	// Message is a short description of the problem.
	Message string

	// Suggestion is a hint on how to fix it.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New creates a diagnostic error.
func New(code string, category Category, message string) *Error {
	return &Error{Code: code, Category: category, Message: message}
}

// WithSuggestion adds a fix suggestion.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap attaches an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// Warn logs a coded diagnostic warning through the given logger.
func Warn(logger *slog.Logger, code, message string, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(message, append([]any{slog.String("code", code)}, args...)...)
}
