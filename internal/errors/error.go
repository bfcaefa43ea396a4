package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Category represents the type of error.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryDecode     Category = "decode"
	CategorySession    Category = "session"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// WebkitError is a structured error with a registered code, an HTTP status and
// optional hints.
type WebkitError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (validation, decode, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Status is the HTTP status code a transport should answer with.
	Status int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WebkitError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WebkitError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WebkitError) WithSuggestion(s string) *WebkitError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WebkitError) WithDetail(d string) *WebkitError {
	e.Detail = d
	return e
}

// WithStatus overrides the registered HTTP status.
func (e *WebkitError) WithStatus(status int) *WebkitError {
	e.Status = status
	return e
}

// Wrap wraps another error.
func (e *WebkitError) Wrap(err error) *WebkitError {
	e.Wrapped = err
	return e
}

// New creates a WebkitError from a registered error code.
func New(code string) *WebkitError {
	template, ok := registry[code]
	if !ok {
		return &WebkitError{
			Code:    code,
			Message: "Unknown error",
			Status:  http.StatusInternalServerError,
		}
	}
	return &WebkitError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		Status:   template.Status,
	}
}

// Newf creates a new WebkitError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WebkitError {
	return &WebkitError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Status:   http.StatusInternalServerError,
	}
}

// FromError wraps a standard error in a WebkitError.
// An error chain that already contains a WebkitError is returned as that error.
func FromError(err error, code string) *WebkitError {
	if err == nil {
		return nil
	}
	var we *WebkitError
	if stderrors.As(err, &we) {
		return we
	}
	return New(code).Wrap(err)
}

// StatusOf returns the HTTP status carried by the first WebkitError in err's
// chain, or 500 when there is none. A nil error maps to 200.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var we *WebkitError
	if stderrors.As(err, &we) && we.Status != 0 {
		return we.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the code of the first WebkitError in err's chain.
func CodeOf(err error) string {
	var we *WebkitError
	if stderrors.As(err, &we) {
		return we.Code
	}
	return ""
}
