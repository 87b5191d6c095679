package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

func TestStringValidation(t *testing.T) {
	assert.NoError(t, NewStringValidation("title", " Doctor ").WithMaxLength(TitleMaxLength).Validate())
	assert.NoError(t, NewStringValidation("nid", "").Optional().Validate())

	err := NewStringValidation("title", "   ").Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.EqualError(t, err, "title is required")

	err = NewStringValidation("title", strings.Repeat("x", 256)).WithMaxLength(TitleMaxLength).Validate()
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = NewStringValidation("password", "short").WithMinLength(PasswordMinLength).Validate()
	assert.EqualError(t, err, "password must be at least 8 characters")

	assert.Error(t, NewStringValidation("email", "nope").WithPattern(EmailPattern).Validate())
	assert.NoError(t, NewStringValidation("email", "a.b@example.com").WithPattern(EmailPattern).Validate())
}

func TestFirst(t *testing.T) {
	err := First(
		NewStringValidation("name", "Rahim"),
		NewStringValidation("email", ""),
		NewStringValidation("password", ""),
	)
	assert.EqualError(t, err, "email is required")
	assert.NoError(t, First())
}
