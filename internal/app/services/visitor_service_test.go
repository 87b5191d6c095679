package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/geo"
)

var visitNow = time.Date(2024, 8, 5, 10, 0, 0, 0, time.UTC)

func newTestVisitorService(store VisitorStore, locator GeoLocator) *visitorServiceImpl {
	svc := NewVisitorService(store, locator, zerolog.Nop()).(*visitorServiceImpl)
	svc.now = func() time.Time { return visitNow }
	return svc
}

func TestTrack_NewVisitor(t *testing.T) {
	store := new(mockVisitorStore)
	locator := new(mockGeoLocator)
	svc := newTestVisitorService(store, locator)

	store.On("GetVisitorByIP", mock.Anything, "203.0.113.7").Return(nil, apperrors.NewResourceNotFoundError("visitor not found")).Once()
	locator.On("Lookup", mock.Anything, "203.0.113.7").Return(geo.Location{Country: "BD", Region: "Dhaka", City: "Dhaka"}, nil).Once()
	store.On("CreateVisitor", mock.Anything, mock.MatchedBy(func(v *models.Visitor) bool {
		return v.IPAddress == "203.0.113.7" && v.Country == "BD" && v.VisitCount == 1 && v.VisitedAt.Equal(visitNow)
	})).Return(nil).Once()

	outcome, err := svc.Track(context.Background(), " 203.0.113.7 ")
	require.NoError(t, err)
	assert.Equal(t, VisitorAdded, outcome)
	assert.Equal(t, "Visitor added successfully.", outcome.Message())
	store.AssertExpectations(t)
	locator.AssertExpectations(t)
}

func TestTrack_GeoFailureDegradesToUnknown(t *testing.T) {
	store := new(mockVisitorStore)
	locator := new(mockGeoLocator)
	svc := newTestVisitorService(store, locator)

	store.On("GetVisitorByIP", mock.Anything, "198.51.100.4").Return(nil, apperrors.NewResourceNotFoundError("visitor not found")).Once()
	locator.On("Lookup", mock.Anything, "198.51.100.4").Return(geo.Location{}, errors.New("timeout")).Once()
	store.On("CreateVisitor", mock.Anything, mock.MatchedBy(func(v *models.Visitor) bool {
		return v.Country == geo.Unknown && v.Region == geo.Unknown && v.City == geo.Unknown
	})).Return(nil).Once()

	outcome, err := svc.Track(context.Background(), "198.51.100.4")
	require.NoError(t, err)
	assert.Equal(t, VisitorAdded, outcome)
	store.AssertExpectations(t)
}

func TestTrack_RevisitWindow(t *testing.T) {
	tests := []struct {
		name      string
		lastVisit time.Time
		want      TrackOutcome
	}{
		{name: "within window", lastVisit: visitNow.Add(-2 * time.Minute), want: VisitorRecentlyRecorded},
		{name: "exactly five minutes", lastVisit: visitNow.Add(-RevisitWindow), want: VisitorRecentlyRecorded},
		{name: "after window", lastVisit: visitNow.Add(-6 * time.Minute), want: VisitorUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockVisitorStore)
			svc := newTestVisitorService(store, new(mockGeoLocator))

			store.On("GetVisitorByIP", mock.Anything, "203.0.113.9").
				Return(&models.Visitor{ID: 5, IPAddress: "203.0.113.9", VisitCount: 2, VisitedAt: tt.lastVisit}, nil).Once()
			if tt.want == VisitorUpdated {
				store.On("IncrementVisit", mock.Anything, int64(5), visitNow).Return(nil).Once()
			}

			outcome, err := svc.Track(context.Background(), "203.0.113.9")
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			store.AssertExpectations(t)
		})
	}
}

func TestTrack_RequiresIP(t *testing.T) {
	svc := newTestVisitorService(new(mockVisitorStore), new(mockGeoLocator))
	_, err := svc.Track(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestVisitorList_SumsVisits(t *testing.T) {
	store := new(mockVisitorStore)
	svc := newTestVisitorService(store, new(mockGeoLocator))

	store.On("ListVisitors", mock.Anything).Return([]models.Visitor{{VisitCount: 3}, {VisitCount: 4}}, nil).Once()

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Visitors, 2)
	assert.Equal(t, int64(7), resp.TotalVisitCount)
}
