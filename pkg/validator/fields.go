package validator

import (
	"errors"
	"regexp"
)

var (
	// ErrNameNotLegal indicates a name with no letters in it
	ErrNameNotLegal = errors.New("name is not a recognized legal variant")

	// ErrInvalidEmail indicates an e-mail address that fails the format check
	ErrInvalidEmail = errors.New("not a valid e-mail address")

	// ErrInvalidPhone indicates a phone number that fails the format check
	ErrInvalidPhone = errors.New("not a valid phone number")

	// ErrContactRequired indicates neither a phone number nor an e-mail was supplied
	ErrContactRequired = errors.New("at least one of phone or e-mail is required")
)

// nameRegex requires at least one letter somewhere in the name
var nameRegex = regexp.MustCompile(`[A-Za-z]`)

// emailRegex is a pragmatic address check: one @, no whitespace, dotted domain
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneRegex matches a 7- or 10-digit number with optional separators,
// optional parenthesized area code, and an optional extension introduced by
// e/x/ex/ext (with optional dot) or "extension"
var phoneRegex = regexp.MustCompile(
	`^(?:\(\d{3}\)[\s./-]?|\d{3}[\s./-]?)?\d{3}[\s./-]?\d{4}(?:\s?(?:(?:e|x|ex|ext)\.?|extension)\s?\d+)?$`,
)

// FieldValidator validates the personnel form fields
type FieldValidator struct{}

// NewFieldValidator creates a new field validator instance
func NewFieldValidator() *FieldValidator {
	return &FieldValidator{}
}

// Name checks that a personal name contains at least one letter.
func (v *FieldValidator) Name(name string) error {
	if !nameRegex.MatchString(name) {
		return ErrNameNotLegal
	}
	return nil
}

// Email checks that an e-mail address is plausibly formed.
func (v *FieldValidator) Email(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Phone checks that a phone number is a 7- or 10-digit sequence with an
// optional extension.
func (v *FieldValidator) Phone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// Contact enforces the business rule that an employee must be reachable:
// at least one of phone/e-mail present, and each present value well formed.
// Absent values are not format-checked.
func (v *FieldValidator) Contact(phone, email string) error {
	if phone == "" && email == "" {
		return ErrContactRequired
	}
	if email != "" {
		if err := v.Email(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := v.Phone(phone); err != nil {
			return err
		}
	}
	return nil
}
