package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking. Every error returned by the REST
// client wraps exactly one of the transport/status sentinels.
var (
	ErrConnection    = errors.New("connection failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrServer        = errors.New("server error")
	ErrUnexpected    = errors.New("unexpected response")
	ErrContract      = errors.New("backend contract violation")
	ErrNotComparable = errors.New("not comparable")
)

// MsgRequired is the field message used for missing required values.
const MsgRequired = "is required"

// APIError is a failed REST call. Status is the HTTP status code, or 0 when
// no response reached the console. Message is the server-provided
// {"message": ...} text, if any.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s: %v", e.Status, e.Message, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ContractError reports a backend payload whose shape broke the documented
// contract. Payload holds the raw decoded body for debugging; it is meant for
// logs, not for end users.
type ContractError struct {
	Field   string
	Reason  string
	Payload any
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: field %q %s", ErrContract.Error(), e.Field, e.Reason)
}

func (e *ContractError) Unwrap() error {
	return ErrContract
}

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StatusOf returns the HTTP status carried by err, or 0 when err did not come
// from a REST response.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ServerMessage returns the server-provided message carried by err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// UserError pairs an error with the message rendered to end users. The
// list-state services return it so callers can show Message while still
// matching the cause with errors.Is.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserError) Unwrap() error {
	return e.Err
}
