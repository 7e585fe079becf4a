// Package affiliate provides domain types for the Shopee affiliate
// integration: request signing, report date ranges and the error taxonomy.
package affiliate

import (
	"errors"
	"fmt"
)

// Standard domain errors.
var (
	ErrMissingCredentials = errors.New("affiliate app id and secret are required")
	ErrInvalidDateRange   = errors.New("date range start must not be after end")

	ErrConfiguration = errors.New("missing or invalid affiliate configuration")
	ErrTransport     = errors.New("affiliate endpoint unreachable or returned an unreadable response")
	ErrAPI           = errors.New("affiliate endpoint reported an error")
	ErrDataShape     = errors.New("affiliate response had an unexpected shape")
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindTransport     ErrorKind = "transport"
	KindAPI           ErrorKind = "api"
	KindDataShape     ErrorKind = "data_shape"
)

// Error is a structured failure from the affiliate pipeline. For KindAPI the
// Message carries the first reported error text verbatim.
type Error struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("affiliate [%s]: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("affiliate [%s]: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is implements errors.Is against the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrAPI:
		return e.Kind == KindAPI
	case ErrDataShape:
		return e.Kind == KindDataShape
	default:
		return false
	}
}

// NewConfigurationError reports a credential or setup problem detected before
// any network call.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// NewTransportError reports a network failure or an unreadable response body.
func NewTransportError(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, cause: cause}
}

// NewAPIError reports an error envelope returned by the endpoint. The message
// is surfaced to callers verbatim.
func NewAPIError(message string, statusCode int) *Error {
	return &Error{Kind: KindAPI, Message: message, StatusCode: statusCode}
}

// NewDataShapeError reports an envelope whose structure could not be used.
func NewDataShapeError(message string) *Error {
	return &Error{Kind: KindDataShape, Message: message}
}
