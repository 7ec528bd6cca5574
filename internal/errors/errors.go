// Package errors provides the typed errors the Shelfmark runtime surfaces to
// its embedding application.
//
// Usage:
//
//	// In the engine - return typed errors
//	if book.OwnedBy(viewer.Email) {
//	    return errors.SelfInteraction("cannot upvote your own book")
//	}
//
//	// In the UI shell - check with errors.Is
//	if errors.Is(err, errors.ErrUnauthenticated) {
//	    redirectToSignIn()
//	    return
//	}
//
//	// Or switch on the Code for user-facing notices
//	var appErr *errors.Error
//	if errors.As(err, &appErr) {
//	    notify(appErr.Message)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the runtime.
const (
	// CodeUnauthenticated means no valid session is present. The caller is
	// expected to prompt sign-in rather than show an inline error.
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	// CodeSelfInteraction means the viewer tried to like/upvote their own
	// entity. Rejected before any network call.
	CodeSelfInteraction Code = "SELF_INTERACTION_FORBIDDEN"
	// CodeForbidden means a non-owner attempted an owner-only mutation.
	CodeForbidden Code = "FORBIDDEN"
	// CodeToggleInFlight means a toggle for the same (entity, kind) pair is
	// still resolving.
	CodeToggleInFlight Code = "TOGGLE_IN_FLIGHT"
	// CodeNotFound means the entity is missing or was deleted server-side.
	CodeNotFound Code = "NOT_FOUND"
	// CodeNetwork covers transport failures and 5xx responses. Never retried
	// automatically - a failed toggle requires a fresh user action.
	CodeNetwork Code = "NETWORK_OR_SERVER_ERROR"
	// CodeValidation means malformed input (empty review text, zero rating).
	CodeValidation Code = "VALIDATION"
	// CodeConflict means the server rejected a duplicate relation.
	CodeConflict Code = "CONFLICT"
)

// Error is a runtime error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrUnauthenticated = &Error{Code: CodeUnauthenticated, Message: "not signed in"}
	ErrSelfInteraction = &Error{Code: CodeSelfInteraction, Message: "cannot act on your own entity"}
	ErrForbidden       = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrToggleInFlight  = &Error{Code: CodeToggleInFlight, Message: "toggle already in flight"}
	ErrNotFound        = &Error{Code: CodeNotFound, Message: "not found"}
	ErrNetwork         = &Error{Code: CodeNetwork, Message: "network or server error"}
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict        = &Error{Code: CodeConflict, Message: "conflict"}
)

// Constructor functions for creating errors with custom messages.

// Unauthenticated creates a not-signed-in error.
func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// SelfInteraction creates a self-interaction error.
func SelfInteraction(msg string) *Error {
	return &Error{Code: CodeSelfInteraction, Message: msg}
}

// SelfInteractionf creates a self-interaction error with formatted message.
func SelfInteractionf(format string, args ...any) *Error {
	return &Error{Code: CodeSelfInteraction, Message: fmt.Sprintf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Forbiddenf creates a forbidden error with formatted message.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// ToggleInFlight creates an in-flight toggle error.
func ToggleInFlight(msg string) *Error {
	return &Error{Code: CodeToggleInFlight, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Network creates a network/server error.
func Network(msg string) *Error {
	return &Error{Code: CodeNetwork, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// FromStatus maps a catalog API response status to a typed error.
// Used by the catalog client so callers never see raw status codes.
func FromStatus(status int, msg string) *Error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch status {
	case http.StatusUnauthorized:
		return Unauthenticated(msg)
	case http.StatusForbidden:
		return Forbidden(msg)
	case http.StatusNotFound:
		return NotFound(msg)
	case http.StatusConflict:
		return Conflict(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return Validation(msg)
	default:
		return Network(msg)
	}
}
