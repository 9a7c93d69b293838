package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRateLimited means the provider asked us to back off.
	ErrRateLimited = errors.New("provider rate limit exceeded")
	// ErrProviderAuth means the provider rejected our credentials.
	ErrProviderAuth = errors.New("provider authentication failed")
)

// InputError is a client-caused validation failure. Message is safe to show.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// NewInputError builds an InputError.
func NewInputError(msg string) *InputError {
	return &InputError{Message: msg}
}

// GenerationError means the provider answered but the content was unusable.
type GenerationError struct {
	Reason string // "parse" or "schema"
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError names the record and field that failed the schema check.
// Index is 1-based; zero means the failure concerns the array itself.
type ValidationError struct {
	Index int
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("Invalid %s in recommendation %d", e.Field, e.Index)
}

// ProviderError is a failed call to the completion provider.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is maps provider status codes onto the sentinel errors so callers can
// use errors.Is(err, ErrRateLimited).
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrProviderAuth:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}
