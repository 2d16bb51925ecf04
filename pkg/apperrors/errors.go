// Package apperrors classifies failures of the validation and lead endpoints.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the class of an error.
type Kind string

const (
	// InvalidFormat is a local validation failure; no network call was made.
	InvalidFormat Kind = "INVALID_FORMAT"
	// RemoteError is a non-2xx or malformed response from DataBowl.
	RemoteError Kind = "REMOTE_ERROR"
	// UnknownAction is an unrecognised dispatch key.
	UnknownAction Kind = "UNKNOWN_ACTION"
	// TransportError is a network-level failure reaching DataBowl.
	TransportError Kind = "TRANSPORT_ERROR"
	// InProgress is a retry that arrived while the first attempt is unfinished.
	InProgress Kind = "IN_PROGRESS"
)

// Error is the standard application error.
type Error struct {
	Kind    Kind
	Message string
	// Status and Body are set for RemoteError.
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, &Error{Kind: RemoteError}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// NewInvalidFormat creates a local validation error with a user facing message.
func NewInvalidFormat(message string) *Error {
	return &Error{Kind: InvalidFormat, Message: message}
}

// NewRemoteError records a non-2xx DataBowl response.
func NewRemoteError(status int, body string) *Error {
	msg := fmt.Sprintf("DataBowl API returned HTTP %d", status)
	if body != "" {
		msg += ": " + body
	}
	return &Error{Kind: RemoteError, Message: msg, Status: status, Body: body}
}

// NewMalformedResponse records a DataBowl response body that is not valid JSON.
func NewMalformedResponse(status int, body string, err error) *Error {
	return &Error{Kind: RemoteError, Message: "Invalid JSON response from DataBowl", Status: status, Body: body, Err: err}
}

// NewUnknownAction is returned by the router for unrecognised actions.
func NewUnknownAction(action string) *Error {
	return &Error{Kind: UnknownAction, Message: "Unknown action: " + action}
}

// NewTransportError wraps a failed round trip.
func NewTransportError(err error) *Error {
	return &Error{Kind: TransportError, Message: "DataBowl request failed", Err: err}
}

// NewInProgress rejects a request whose earlier twin has not finished yet.
func NewInProgress(message string) *Error {
	return &Error{Kind: InProgress, Message: message}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsInvalidFormat(err error) bool  { return KindOf(err) == InvalidFormat }
func IsRemoteError(err error) bool    { return KindOf(err) == RemoteError }
func IsUnknownAction(err error) bool  { return KindOf(err) == UnknownAction }
func IsTransportError(err error) bool { return KindOf(err) == TransportError }
func IsInProgress(err error) bool     { return KindOf(err) == InProgress }
