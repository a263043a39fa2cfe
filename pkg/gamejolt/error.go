package gamejolt

import (
	"errors"
	"fmt"
)

var (
	// Session rejections, returned before any request is sent.
	ErrAuthenticationInProgress = errors.New("authentication already in progress")
	ErrAlreadyAuthenticated     = errors.New("already authenticated")

	// Lookups that succeeded on the wire but matched nothing.
	ErrUserNotFound   = errors.New("user not found")
	ErrTrophyNotFound = errors.New("trophy not found")

	ErrNoUsersRequested = errors.New("no users requested")

	errInvalidJSON     = errors.New("response is not valid JSON")
	errMissingEnvelope = errors.New(`response has no "response" object`)
)

// TransportErrorKind classifies failures below the application layer.
type TransportErrorKind string

const (
	// ConnectionError means the request never got an HTTP response.
	ConnectionError TransportErrorKind = "connection error"
	// ProtocolError means the request could not be built or the status was not 2xx.
	ProtocolError TransportErrorKind = "protocol error"
	// DecodingError means the body could not be read or is not an envelope.
	DecodingError TransportErrorKind = "decoding error"
)

// TransportError is a failure below the application layer.
type TransportError struct {
	Kind       TransportErrorKind
	StatusCode int // set for non-2xx responses
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError carries a message from the server (success "false") or
// from a decoder that rejected an enum label.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "request rejected by server"
	}
	return e.Message
}

// AuthorizationError is returned when an operation needs an authenticated
// Session and the Session is not authenticated. No request is sent.
type AuthorizationError struct {
	Operation string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s requires an authenticated session", e.Operation)
}

// ConfigurationError is returned by Config.Validate and NewClient.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
