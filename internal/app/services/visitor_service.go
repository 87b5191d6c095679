package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/geo"
)

// RevisitWindow is how long a repeat visit from the same IP is ignored
const RevisitWindow = 5 * time.Minute

// TrackOutcome describes what tracking a visit changed
type TrackOutcome int

const (
	VisitorAdded TrackOutcome = iota
	VisitorUpdated
	VisitorRecentlyRecorded
)

// Message is the user-facing description of the outcome
func (o TrackOutcome) Message() string {
	switch o {
	case VisitorAdded:
		return "Visitor added successfully."
	case VisitorUpdated:
		return "Visitor updated successfully."
	default:
		return "Visitor already recorded recently."
	}
}

// GeoLocator resolves an IP address to a location
type GeoLocator interface {
	Lookup(ctx context.Context, ip string) (geo.Location, error)
}

// VisitorService counts visits per client IP
type VisitorService interface {
	Track(ctx context.Context, ip string) (TrackOutcome, error)
	List(ctx context.Context) (*dto.VisitorListResponse, error)
	TotalVisits(ctx context.Context) (int64, error)
}

type visitorServiceImpl struct {
	store  VisitorStore
	geo    GeoLocator
	now    func() time.Time
	logger zerolog.Logger
}

// NewVisitorService creates a VisitorService
func NewVisitorService(store VisitorStore, locator GeoLocator, logger zerolog.Logger) VisitorService {
	return &visitorServiceImpl{
		store:  store,
		geo:    locator,
		now:    time.Now,
		logger: logger,
	}
}

// Track records a visit from ip. Repeat visits inside RevisitWindow are not counted.
// Geolocation failures never fail the request; the location is stored as Unknown.
func (s *visitorServiceImpl) Track(ctx context.Context, ip string) (TrackOutcome, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return 0, apperrors.NewValidationError("ip", "IP address is required.")
	}
	now := s.now().UTC()

	existing, err := s.store.GetVisitorByIP(ctx, ip)
	switch {
	case err == nil:
		if now.Sub(existing.VisitedAt) <= RevisitWindow {
			return VisitorRecentlyRecorded, nil
		}
		if err := s.store.IncrementVisit(ctx, existing.ID, now); err != nil {
			return 0, fmt.Errorf("failed to update visitor: %w", err)
		}
		return VisitorUpdated, nil
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return 0, fmt.Errorf("failed to look up visitor: %w", err)
	}

	location, err := s.geo.Lookup(ctx, ip)
	if err != nil {
		s.logger.Warn().Err(err).Str("ip", ip).Msg("Geolocation lookup failed")
		location = geo.UnknownLocation()
	}

	visitor := &models.Visitor{
		IPAddress:  ip,
		Country:    location.Country,
		Region:     location.Region,
		City:       location.City,
		VisitCount: 1,
		VisitedAt:  now,
	}
	if err := s.store.CreateVisitor(ctx, visitor); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return VisitorRecentlyRecorded, nil
		}
		return 0, fmt.Errorf("failed to create visitor: %w", err)
	}

	s.logger.Debug().Str("ip", ip).Str("country", visitor.Country).Msg("New visitor recorded")
	return VisitorAdded, nil
}

// List returns every visitor with the overall visit count
func (s *visitorServiceImpl) List(ctx context.Context) (*dto.VisitorListResponse, error) {
	visitors, err := s.store.ListVisitors(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, v := range visitors {
		total += v.VisitCount
	}
	return &dto.VisitorListResponse{Visitors: visitors, TotalVisitCount: total}, nil
}

// TotalVisits sums every recorded visit
func (s *visitorServiceImpl) TotalVisits(ctx context.Context) (int64, error) {
	return s.store.TotalVisits(ctx)
}
