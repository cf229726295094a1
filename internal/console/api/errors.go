package api

import "errors"

// Kind classifies an API failure. The mutation store treats every kind
// uniformly as "operation rejected"; the auth gate looks specifically for
// KindUnauthorized.
type Kind string

const (
	// KindTransport: the request never produced a usable response
	// (connection refused, timeout, malformed body).
	KindTransport Kind = "transport"
	// KindUnauthorized: the service refused the call for lack of a session.
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound: the addressed resource does not exist.
	KindNotFound Kind = "not_found"
	// KindRejected: the service understood the call and refused it
	// (duplicate email, server-side validation, internal error).
	KindRejected Kind = "rejected"
)

// Error is the failure shape every EntityAPI/ReferenceAPI call returns.
// Message is the human-readable text the service attached, possibly empty.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrorKind extracts the Kind from err, defaulting to KindTransport for
// errors that did not come from this package.
func ErrorKind(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindTransport
}

// ErrorMessage extracts the human-readable message from err, or "" when the
// failure carries none (callers supply their own fallback text).
func ErrorMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}
