package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure classes the HTTP boundary understands.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindCSRF           Kind = "csrf"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Error carries a client-facing classification alongside the original cause.
// Every kind except KindInternal is operational: an expected, named failure
// rather than a programming defect.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindCSRF:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Operational reports whether the error is an expected, named failure that
// should be written to the audit log before responding.
func (e *Error) Operational() bool {
	return e.Kind != KindInternal
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// CSRF is a token-validation failure. It is kept distinct from plain
// validation so the boundary can remap it by route prefix.
func CSRF() *Error {
	return &Error{Kind: KindCSRF, Message: "Invalid or missing CSRF token"}
}

func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{Kind: KindAuthentication, Message: message}
}

func Authorization(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Server Error", Cause: cause}
}

// From classifies an arbitrary error. Already-classified errors pass
// through; anything else becomes an internal error with a generic message.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
