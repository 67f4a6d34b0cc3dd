package errorvalues

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Persistence
	ErrKeyNotFound      = errors.New("key not found")
	ErrCorruptedState   = errors.New("persisted state is corrupted")
	ErrStoreUnavailable = errors.New("key-value store unavailable")

	// Wizard
	ErrValidation      = errors.New("validation failed")
	ErrWrongStep       = errors.New("operation not allowed on current step")
	ErrFirstStep       = errors.New("already on the first step")
	ErrLastStep        = errors.New("already on the last step")
	ErrNoHierarchy     = errors.New("no goal hierarchy generated yet")
	ErrStaleResult     = errors.New("result superseded by a newer request")
	ErrEmptyRefinement = errors.New("refinement needs feedback or at least one adjustment")

	// Generator
	ErrGenerationFailed = errors.New("content generation failed")

	// Session
	ErrNotAuthenticated     = errors.New("user is not signed in")
	ErrWrongMode            = errors.New("operation not allowed in current mode")
	ErrModeGuard            = errors.New("mode requires data that is absent")
	ErrConfirmationMismatch = errors.New("confirmation phrase doesn't match")
	ErrSessionNotFound      = errors.New("device session doesn't exist")

	// Dashboard
	ErrNoAction        = errors.New("no daily action loaded")
	ErrActionCompleted = errors.New("daily action already completed")
	ErrTimerNotRunning = errors.New("focus timer is not running")

	// Auth
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError carries one message per failed field.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
