// Package errors provides the closed error taxonomy shared by every store
// and adapter. Always import it as perr (platform/errors).
//
// An operation either succeeds, resolves as canceled (see ErrCanceled), or
// fails with exactly one *Error carrying a Kind from the closed set below.
// Classification happens once, at the point the failure is first observed,
// and the value is propagated unchanged
package errors

import (
	"context"
	stderrs "errors"
	"fmt"
)

// Kind is the closed classification of a failed operation.
// Values are stable; add sparingly
type Kind uint8

const (
	// KindUnknown is for unclassified failures (malformed responses, parse errors)
	KindUnknown Kind = iota

	// KindValidation is for input that failed local or server-side validation
	KindValidation

	// KindNetwork is for transport failures with no usable response (offline, timeout)
	KindNetwork

	// KindNotFound is for a by-identifier operation against a missing resource
	KindNotFound

	// KindStorage is for server-side failures (any other non-2xx)
	KindStorage
)

// String returns the lowercase wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not-found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// ErrCanceled is the sentinel resolution of a superseded or aborted call.
// It is never a *Error: cancellation is not a failure, is never surfaced to
// the user, and must be checked with IsCanceled on every resumption point
var ErrCanceled = stderrs.New("operation canceled")

// FieldError is one offending field with its human message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; kind is machine facing
// details is optional (validation field messages); op is an optional operation tag
// orig is the wrapped cause
type Error struct {
	orig    error
	msg     string
	kind    Kind
	op      string
	details []FieldError
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error { return e.orig }

// Kind returns the classification
func (e *Error) Kind() Kind { return e.kind }

// Message returns the bare message without the wrapped cause
func (e *Error) Message() string { return e.msg }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Details returns the validation field messages, if any
func (e *Error) Details() []FieldError { return e.details }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf extracts the Kind from any error, defaulting to Unknown
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.kind == kind
	}
	return false
}

// IsCanceled reports whether err resolves as a cancellation, either our
// sentinel or a bare context cancellation
func IsCanceled(err error) bool {
	return stderrs.Is(err, ErrCanceled) || stderrs.Is(err, context.Canceled)
}

// DetailsOf extracts field messages from any error, nil when absent
func DetailsOf(err error) []FieldError {
	if e, ok := As(err); ok {
		return e.details
	}
	return nil
}

// Mutators (copy-on-write)

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// WithDetails attaches field messages to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithDetails(err error, details []FieldError) error {
	if e, ok := As(err); ok {
		c := *e
		c.details = details
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given kind and message
func New(kind Kind, msg string) error { return &Error{kind: kind, msg: msg} }

// Newf returns a new *Error with kind and formatted message
func Newf(kind Kind, format string, a ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with kind and message
func Wrap(orig error, kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with kind and formatted message
func Wrapf(orig error, kind Kind, format string, a ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(KindValidation, format, a...) }

// Networkf returns a network error
func Networkf(format string, a ...any) error { return Newf(KindNetwork, format, a...) }

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(KindNotFound, format, a...) }

// Storagef returns a storage (server-side) error
func Storagef(format string, a ...any) error { return Newf(KindStorage, format, a...) }

// Unknownf returns an unclassified error
func Unknownf(format string, a ...any) error { return Newf(KindUnknown, format, a...) }
