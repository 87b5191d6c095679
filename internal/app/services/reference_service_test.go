package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

func TestReferenceService_Create(t *testing.T) {
	store := &mockReferenceStore{kind: models.ReferenceOccupation}
	svc := NewReferenceService(zerolog.Nop(), store)

	store.On("Create", mock.Anything, mock.MatchedBy(func(item *models.ReferenceItem) bool {
		return item.Title == "Doctor" && item.CreatedByID != nil && *item.CreatedByID == 1
	})).Return(nil).Once()

	item, err := svc.Create(context.Background(), admin, models.ReferenceOccupation, "  Doctor ")
	require.NoError(t, err)
	assert.Equal(t, "Doctor", item.Title)
	store.AssertExpectations(t)
}

func TestReferenceService_Rejections(t *testing.T) {
	store := &mockReferenceStore{kind: models.ReferenceInstitution}
	svc := NewReferenceService(zerolog.Nop(), store)
	ctx := context.Background()

	_, err := svc.Create(ctx, vendor, models.ReferenceInstitution, "Uttara University")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Create(ctx, admin, models.ReferenceInstitution, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Create(ctx, admin, models.ReferenceInstitution, strings.Repeat("x", 256))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Update(ctx, admin, models.ReferenceInstitution, 0, "Milestone College")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.ErrorIs(t, svc.Delete(ctx, admin, models.ReferenceOccupation, 1), apperrors.ErrResourceNotFound)

	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReferenceService_DeleteInUse(t *testing.T) {
	store := &mockReferenceStore{kind: models.ReferenceIncidentLocation}
	svc := NewReferenceService(zerolog.Nop(), store)

	inUse := apperrors.NewCustomError(apperrors.ErrResourceInUse, "incident_location is still referenced by people records")
	store.On("Delete", mock.Anything, int64(2)).Return(inUse).Once()

	err := svc.Delete(context.Background(), admin, models.ReferenceIncidentLocation, 2)
	assert.ErrorIs(t, err, apperrors.ErrResourceInUse)
	store.AssertExpectations(t)
}

func TestReferenceService_Update(t *testing.T) {
	store := &mockReferenceStore{kind: models.ReferenceOccupation}
	svc := NewReferenceService(zerolog.Nop(), store)

	store.On("UpdateTitle", mock.Anything, int64(4), "Engineer").
		Return(&models.ReferenceItem{ID: 4, Title: "Engineer"}, nil).Once()

	item, err := svc.Update(context.Background(), admin, models.ReferenceOccupation, 4, "Engineer")
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ID)
	store.AssertExpectations(t)
}
