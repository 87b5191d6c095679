package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

func TestCanViewPerson(t *testing.T) {
	person := &models.Person{ID: 1, SubmittedByID: 7}

	assert.True(t, CanViewPerson(Principal{UserID: 1, Role: models.RoleAdmin}, person))
	assert.True(t, CanViewPerson(Principal{UserID: 7, Role: models.RoleVendor}, person))
	assert.False(t, CanViewPerson(Principal{UserID: 8, Role: models.RoleUser}, person))
	assert.False(t, CanViewPerson(Principal{Role: models.RoleUser}, &models.Person{}))
	assert.False(t, CanViewPerson(Principal{Role: models.RoleAdmin}, nil))

	err := ValidateViewPerson(Principal{UserID: 8, Role: models.RoleUser}, person)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestValidateAdmin(t *testing.T) {
	assert.NoError(t, ValidateAdmin(Principal{Role: models.RoleAdmin}, "delete records"))

	err := ValidateAdmin(Principal{Role: models.RoleVendor}, "delete records")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "only administrators can delete records", err.Error())
}

func TestSubmissionStatus(t *testing.T) {
	verified := "verified"
	bogus := "ARCHIVED"

	status, err := SubmissionStatus(Principal{Role: models.RoleUser}, &verified)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status)

	status, err = SubmissionStatus(Principal{Role: models.RoleAdmin}, &verified)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, status)

	status, err = SubmissionStatus(Principal{Role: models.RoleAdmin}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, status)

	_, err = SubmissionStatus(Principal{Role: models.RoleAdmin}, &bogus)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
