package ingestion

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// IngestInput holds the parameters for ingesting one candidate word.
type IngestInput struct {
	Word           string
	BaseLanguage   domain.Language
	TargetLanguage domain.Language
}

// Validate checks all fields and collects all errors. maxWordLength caps the
// candidate word's byte length.
func (i *IngestInput) Validate(maxWordLength int) error {
	var errs []domain.FieldError

	word := strings.TrimSpace(i.Word)
	if word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	} else if len(word) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "word", Message: fmt.Sprintf("too long (max %d)", maxWordLength)})
	}

	if !i.BaseLanguage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "base_language", Message: "unsupported"})
	}
	if !i.TargetLanguage.IsValid() {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "unsupported"})
	}
	if i.BaseLanguage.IsValid() && i.BaseLanguage == i.TargetLanguage {
		errs = append(errs, domain.FieldError{Field: "target_language", Message: "must differ from base language"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Result is the caller-facing outcome of a successful ingestion.
type Result struct {
	TargetEntryID uuid.UUID
	BaseEntryID   uuid.UUID
	LinkID        uuid.UUID
}
