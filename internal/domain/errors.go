package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError reports malformed or incomplete input to a core
// operation. It is always recoverable by the caller and is surfaced to
// the UI as a correctable message, never logged as a system fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// GatewayError reports a non-success response or a network failure from
// the payment backend. Retryable; distinct from "payment incomplete".
type GatewayError struct {
	StatusCode int
	Msg        string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s (status %d)", e.Msg, e.StatusCode)
	}
	return "gateway: " + e.Msg
}

func (e *GatewayError) Unwrap() error { return e.Err }

// ProtocolError reports a well-delivered but malformed backend response,
// such as a missing payment_session_id. It indicates a contract mismatch
// between the storefront and the backend, not a transient failure, and is
// logged distinctly from GatewayError.
type ProtocolError struct {
	Msg string
	Err error
}

func (e *ProtocolError) Error() string { return "protocol: " + e.Msg }

func (e *ProtocolError) Unwrap() error { return e.Err }

// IntegrationError reports that a provider-side dependency (the hosted
// checkout SDK, a misconfigured credential) is unavailable. A deployment
// defect rather than a payment failure.
type IntegrationError struct {
	Msg string
}

func (e *IntegrationError) Error() string { return "integration: " + e.Msg }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
