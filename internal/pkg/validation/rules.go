package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yigit/memorial/internal/pkg/apperrors"
)

// Validation limits shared by the services
var (
	EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// MobilePattern accepts an optional leading + followed by digits, spaces or dashes
	MobilePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,30}$`)

	PasswordMinLength = 8
	TitleMaxLength    = 255
	NameMaxLength     = 255
)

// StringValidation checks one named string value
type StringValidation struct {
	Field    string
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a required validation for field; the value is trimmed
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length in characters
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in characters
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Optional allows the empty string
func (v *StringValidation) Optional() *StringValidation {
	v.Required = false
	return v
}

// Validate returns a validation error naming the field, or nil
func (v *StringValidation) Validate() error {
	if v.Value == "" {
		if v.Required {
			return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s is required", v.Field))
		}
		return nil
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at least %d characters", v.Field, v.MinLen))
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen))
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s has an invalid format", v.Field))
	}

	return nil
}

// First returns the first failing validation
func First(validations ...*StringValidation) error {
	for _, v := range validations {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
