package errors

import (
	"context"
	stderrs "errors"
	"encoding/json"
	"net/http"
)

// Classification is priority ordered and first match wins:
//
//  1. cancellation     -> ErrCanceled sentinel, never a *Error
//  2. local validation -> KindValidation (handled by platform/validate, before any call)
//  3. no response      -> KindNetwork
//  4. 404 on by-id op  -> KindNotFound
//  5. 422              -> KindValidation with server field messages
//  6. other non-2xx    -> KindStorage
//  7. anything else    -> KindUnknown
//
// The classifier never logs and never touches the UI.

// FromTransport classifies a failure that produced no HTTP response.
// Context cancellation maps to the sentinel; deadline expiry is a network
// condition indistinguishable from any other unreachable backend
func FromTransport(err error) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, ErrCanceled) {
		return ErrCanceled
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return Wrap(err, KindNetwork, "request timed out")
	}
	return Wrap(err, KindNetwork, "backend unreachable")
}

// serverFault is the error payload shape the backend returns for 4xx/5xx
type serverFault struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FromStatus classifies a non-2xx HTTP response. byID marks operations
// addressed to a single identifier, where 404 means the resource is gone
// rather than a broken route. body may be nil or partial
func FromStatus(status int, byID bool, body []byte) error {
	var fault serverFault
	_ = json.Unmarshal(body, &fault)

	switch {
	case status == http.StatusNotFound && byID:
		if fault.Message != "" {
			return New(KindNotFound, fault.Message)
		}
		return New(KindNotFound, "resource not found")
	case status == http.StatusUnprocessableEntity:
		msg := fault.Message
		if msg == "" {
			msg = "request rejected by server validation"
		}
		return &Error{kind: KindValidation, msg: msg, details: fault.Errors}
	case status >= 400:
		if fault.Message != "" {
			return Newf(KindStorage, "server error %d: %s", status, fault.Message)
		}
		return Newf(KindStorage, "server error %d", status)
	default:
		return Newf(KindUnknown, "unexpected status %d", status)
	}
}

// UserMessage maps any error to the fixed, kind-specific text shown to the
// operator. Canceled operations have no user-facing text at all
func UserMessage(err error) string {
	if err == nil || IsCanceled(err) {
		return ""
	}
	switch KindOf(err) {
	case KindValidation:
		return "Some fields are invalid. Please correct them and try again."
	case KindNetwork:
		return "Cannot reach the server. Check your connection and try again."
	case KindNotFound:
		return "This record no longer exists. Refresh the list and try again."
	case KindStorage:
		return "The server could not complete the operation. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}
