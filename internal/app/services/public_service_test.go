package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

func TestPublicListQuery_Filter(t *testing.T) {
	f := PublicListQuery{
		Search:       "  Uttara ",
		Age:          "30",
		IncidentType: "MARTYR",
		Gender:       "female",
		Skip:         24,
		Take:         12,
	}.Filter()

	assert.Equal(t, "Uttara", f.Search)
	assert.Equal(t, 30, f.MaxAge)
	assert.Equal(t, models.IncidentDeath, f.IncidentType)
	assert.Equal(t, "female", f.Gender)
	assert.Equal(t, uint64(24), f.Offset)
	assert.Equal(t, uint64(12), f.Limit)
	assert.True(t, f.OrderByDate)

	f = PublicListQuery{Age: "old", IncidentType: "anything"}.Filter()
	assert.Zero(t, f.MaxAge)
	assert.Equal(t, models.IncidentInjured, f.IncidentType)

	f = PublicListQuery{Age: "-3"}.Filter()
	assert.Zero(t, f.MaxAge)
	assert.Empty(t, f.IncidentType)
}

func TestPublicService_ListPeople(t *testing.T) {
	people := new(mockPersonStore)
	svc := NewPublicService(people, NewReferenceService(zerolog.Nop()), new(mockVisitorStore))

	occupation := "Student"
	records := []models.PersonDetail{
		{Person: models.Person{ID: 1, Name: strPtr("Abu Sayed"), IncidentType: models.IncidentDeath}, OccupationTitle: &occupation},
	}
	people.On("ListPublicPeople", mock.Anything, mock.AnythingOfType("models.PersonFilter")).Return(records, int64(31), nil).Once()

	cards, total, err := svc.ListPeople(context.Background(), PublicListQuery{Take: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(31), total)
	require.Len(t, cards, 1)
	assert.Equal(t, "Student", *cards[0].OccupationTitle)
	people.AssertExpectations(t)
}

func TestPublicService_GetPersonHidesUnverified(t *testing.T) {
	people := new(mockPersonStore)
	svc := NewPublicService(people, NewReferenceService(zerolog.Nop()), new(mockVisitorStore))

	people.On("GetPersonDetail", mock.Anything, int64(1)).
		Return(&models.PersonDetail{Person: models.Person{ID: 1, Status: models.StatusPending}}, nil).Once()
	people.On("GetPersonDetail", mock.Anything, int64(2)).
		Return(&models.PersonDetail{Person: models.Person{ID: 2, Status: models.StatusVerified}}, nil).Once()

	_, err := svc.GetPerson(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrPersonNotFound)

	detail, err := svc.GetPerson(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ID)
	assert.Equal(t, []string{}, detail.Gallery)
}

func TestPublicService_ReferencesAndVisits(t *testing.T) {
	locations := &mockReferenceStore{kind: models.ReferenceIncidentLocation}
	visitors := new(mockVisitorStore)
	svc := NewPublicService(new(mockPersonStore), NewReferenceService(zerolog.Nop(), locations), visitors)

	locations.On("List", mock.Anything).Return([]models.ReferenceItem{{ID: 3, Title: "Azampur"}}, nil).Once()
	visitors.On("TotalVisits", mock.Anything).Return(int64(1024), nil).Once()

	options, err := svc.ListReferences(context.Background(), models.ReferenceIncidentLocation)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Azampur", options[0].Title)

	_, err = svc.ListReferences(context.Background(), models.ReferenceOccupation)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	total, err := svc.TotalVisits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1024), total)
}
