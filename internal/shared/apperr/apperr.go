package apperr

import (
	"errors"
	"fmt"
)

// Stable error codes. Each maps 1:1 to an HTTP status and a localizable
// message, see internal/shared/respond.
const (
	CodeBadRequest       = "ERROR-0400"
	CodeUnauthenticated  = "ERROR-0401"
	CodeForbidden        = "ERROR-0403"
	CodeNotFound         = "ERROR-0404"
	CodeMethodNotAllowed = "ERROR-0405"
	CodePayloadTooLarge  = "ERROR-0413"
	CodeValidation       = "ERROR-0422"
	CodeRateLimited      = "ERROR-0429"
	CodeInternal         = "ERROR-0500"
	CodeMaintenance      = "ERROR-0503"

	CodePasswordMismatch = "ERROR-PASSWORD-0001"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrMaintenance        = errors.New("service unavailable")
	ErrRateLimited        = errors.New("too many requests")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrMethodNotAllowed   = errors.New("method not allowed")
)

type (
	// FieldError is a single per-field failure entry in an API response.
	FieldError struct {
		Title   string `json:"title"`
		Detail  string `json:"detail"`
		Pointer string `json:"pointer"`
	}

	// Error is a domain failure that carries its own code, HTTP status and
	// optional field errors. It propagates unmodified up the call chain and
	// is turned into a response envelope only at the HTTP boundary.
	Error struct {
		Code    string
		Status  int
		Message string
		Fields  []FieldError
		wrapped error
	}

	// HTTPError is a generic HTTP-kind failure identified only by status.
	HTTPError struct {
		Status int
		Reason string
	}

	// ValidationError holds per-field-per-rule violations for a request body.
	ValidationError struct {
		Fields []FieldError
	}
)

// New creates a domain error with the given code. Status defaults to 400.
func New(code string) *Error {
	return &Error{Code: code, Status: 400}
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.wrapped)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.wrapped }

// WithStatus overrides the HTTP status the error maps to.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// WithMessage overrides the localized message looked up from the code table.
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// WithFields attaches structured field errors.
func (e *Error) WithFields(fields ...FieldError) *Error {
	e.Fields = append(e.Fields, fields...)
	return e
}

// Wrap records the underlying cause for logs, never for response bodies.
func (e *Error) Wrap(err error) *Error {
	e.wrapped = err
	return e
}

func (e *HTTPError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("http error %d", e.Status)
	}
	return fmt.Sprintf("http error %d: %s", e.Status, e.Reason)
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}
