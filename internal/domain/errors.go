package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals a rejected search submission; never reaches the network layer.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidMode signals a transition to a mode with no registered builder/renderer pair.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrSearchInFlight signals a submission while another one is still pending.
	ErrSearchInFlight = errors.New("search already in flight")
	// ErrStaleResponse signals a response that resolved after the session moved on.
	ErrStaleResponse = errors.New("stale response")
	// ErrNetwork signals a collaborator failure (non-success response or transport error).
	ErrNetwork = errors.New("network failure")
	// ErrChatUnavailable signals that no chat provider is configured.
	ErrChatUnavailable = errors.New("chat unavailable")
	// ErrHistoryEntryNotFound signals a replay of a missing history entry.
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)

// ValidationKind classifies why a submission was rejected before dispatch.
type ValidationKind string

// Validation failure kinds.
const (
	EmptyField          ValidationKind = "empty_field"
	InvalidNumber       ValidationKind = "invalid_number"
	NoPlatformsSelected ValidationKind = "no_platforms_selected"
	UnknownMode         ValidationKind = "unknown_mode"
)

// ValidationError wraps ErrValidation with the failure kind and offending field.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrValidation.Error(), e.Kind, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for the given field.
func NewValidation(kind ValidationKind, field string) error {
	return &ValidationError{Kind: kind, Field: field}
}

// NetworkError wraps ErrNetwork with the collaborator status and message.
// Message carries the collaborator-supplied human-readable text when present.
type NetworkError struct {
	StatusCode int
	Message    string
}

func (e *NetworkError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrNetwork.Error(), e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrNetwork.Error(), e.StatusCode, e.Message)
}

func (e *NetworkError) Unwrap() error { return ErrNetwork }

// NewNetwork creates a network error with the collaborator-supplied message.
func NewNetwork(statusCode int, message string) error {
	return &NetworkError{StatusCode: statusCode, Message: message}
}
