package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// Ingestion taxonomy. The caller translates these into user-visible
	// messages and decides whether to offer a retry affordance.

	// ErrAnalysisRejected: the analysis determined the input is not a valid
	// word for the language pair. Not retryable without changing the input.
	ErrAnalysisRejected = errors.New("analysis rejected")

	// ErrAnalysisUnavailable: transient failure reaching the analysis
	// provider. Retryable by the caller; never retried automatically.
	ErrAnalysisUnavailable = errors.New("analysis unavailable")

	// ErrIncompleteAnalysis: the analysis violated the field-completeness
	// contract. Treated as a provider defect; not retried with the same input.
	ErrIncompleteAnalysis = errors.New("incomplete analysis")

	// ErrStorageConflict: a constraint violation during the transactional
	// write not explained by expected upsert semantics. Retryable.
	ErrStorageConflict = errors.New("storage conflict")

	// ErrIngestionFailed: any other unexpected failure during the
	// transactional write. Non-retryable without investigation.
	ErrIngestionFailed = errors.New("ingestion failed")

	// ErrQuotaExceeded: the user's speech-synthesis character quota for the
	// current window is exhausted.
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// IsRetryable reports whether the caller may usefully retry the same input.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAnalysisUnavailable) || errors.Is(err, ErrStorageConflict)
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
