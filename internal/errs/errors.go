// Package errs provides the unified error type used across ddlgen.
//
// Every subsystem (dialect classifier, client construction, renderer,
// filestore, …) returns *errs.Error so callers can branch on the kind of
// failure without importing the package that produced it.
//
// Usage:
//
//	// In the classifier, reject an unknown dialect:
//	return errs.New(errs.ErrKindUnsupportedDialect, fmt.Sprintf("unknown dialect %q", s))
//
//	// In a caller, check the error kind:
//	if errs.IsUnsupportedDialect(err) {
//	    http.Error(w, err.Error(), http.StatusBadRequest)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
type ErrKind int

const (
	ErrKindUnknown                 ErrKind = iota
	ErrKindUnsupportedDialect              // dialect identifier not in the closed set
	ErrKindInvalidConnectionConfig         // specialized dialect missing required connection fields
	ErrKindRender                          // no builder configured, bad schema, or repair failure
	ErrKindInvalidInput                    // bad arguments from the caller (files, DSNs, flags)
	ErrKindNotFound                        // missing profile, bucket or object
	ErrKindConnectionFailed                // cannot reach the object store
	ErrKindTimeout                         // context deadline / cancellation
	ErrKindPermissionDenied                // access denied / auth failure
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindUnsupportedDialect:
		return "unsupported_dialect"
	case ErrKindInvalidConnectionConfig:
		return "invalid_connection_config"
	case ErrKindRender:
		return "render_error"
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindConnectionFailed:
		return "connection_failed"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by ddlgen subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original lower-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsUnsupportedDialect reports whether err was caused by an unrecognized
// dialect identifier.
func IsUnsupportedDialect(err error) bool {
	return KindOf(err) == ErrKindUnsupportedDialect
}

// IsInvalidConnectionConfig reports whether err was caused by a connection
// configuration that cannot build a specialized client.
func IsInvalidConnectionConfig(err error) bool {
	return KindOf(err) == ErrKindInvalidConnectionConfig
}

// IsRender reports whether err is a statement rendering failure.
func IsRender(err error) bool {
	return KindOf(err) == ErrKindRender
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsNotFound reports whether err represents a missing profile, bucket or object.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return KindOf(err) == ErrKindPermissionDenied
}

// KindOf extracts the ErrKind from any error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
