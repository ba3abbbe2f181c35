package auth

import (
	"net/mail"
	"strings"

	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// RegisterInput holds the parameters for creating an account.
type RegisterInput struct {
	Email          string
	Password       string
	BaseLanguage   domain.Language
	TargetLanguage domain.Language
}

// Validate checks all fields and collects all errors.
func (i *RegisterInput) Validate() error {
	var errs []domain.FieldError

	if _, err := mail.ParseAddress(strings.TrimSpace(i.Email)); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid address"})
	}
	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(i.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long (max 72)"})
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

// LoginInput holds email/password credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks that credentials are present.
func (i *LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
