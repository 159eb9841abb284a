// internal/catalog/errors.go
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures for protocol mapping.
type ErrorKind string

const (
	ErrKindValidation    ErrorKind = "validation_error"
	ErrKindNotFound      ErrorKind = "not_found"
	ErrKindDataIntegrity ErrorKind = "data_integrity"
	ErrKindUpstream      ErrorKind = "upstream_error"
	ErrKindTimeout       ErrorKind = "timeout"
)

// Error is the engine's structured error. Validation errors always name the
// offending field; internal causes never leak through Error().
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrKindValidation, Field: field, Message: message}
}

func NewNotFoundError(resource string) *Error {
	return &Error{Kind: ErrKindNotFound, Message: resource + " not found"}
}

func NewDataIntegrityError(message string, cause error) *Error {
	return &Error{Kind: ErrKindDataIntegrity, Message: message, cause: cause}
}

func NewUpstreamError(message string, cause error) *Error {
	return &Error{Kind: ErrKindUpstream, Message: message, cause: cause}
}

func NewTimeoutError(cause error) *Error {
	return &Error{Kind: ErrKindTimeout, Message: "request timed out", cause: cause}
}

// KindOf extracts the ErrorKind from any error returned by the engine.
// Unclassified errors report as upstream failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrKindTimeout
	}
	return ErrKindUpstream
}

// wrapStoreError classifies a data-store failure, keeping timeouts distinct
// so callers never mistake an aborted page for a server fault.
func wrapStoreError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewTimeoutError(err)
	}
	return NewUpstreamError("data store query failed", err)
}
