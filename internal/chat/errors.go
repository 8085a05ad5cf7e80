package chat

import "errors"

// Kind is the closed set of failure categories surfaced to the user. Every
// error that crosses the HTTP boundary carries exactly one of these.
type Kind string

const (
	// KindValidation rejects a submission before any extraction, composition
	// or network work (empty question, empty document set).
	KindValidation Kind = "validation"
	// KindBusy rejects a submission while another question is in flight.
	KindBusy Kind = "busy"
	// KindExtraction aborts a whole upload batch when any file is unreadable.
	KindExtraction Kind = "extraction"
	// KindConfiguration means the model credential is missing; no network
	// call was attempted.
	KindConfiguration Kind = "configuration"
	// KindService collapses every remote failure (transport, malformed
	// response, remote error) into one opaque user-safe message.
	KindService Kind = "service"
)

// Error is a user-facing failure. Message is safe to show; the wrapped cause
// is for logs only.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// NewError builds a user-facing error of the given kind wrapping an optional
// underlying cause.
func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf classifies err. Errors that are not a *Error are treated as
// internal service failures.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindService
}
