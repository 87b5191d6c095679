package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

// PublicListQuery holds the raw query parameters of the public listing
type PublicListQuery struct {
	Search       string
	Age          string
	Occupation   string
	Gender       string
	IncidentType string
	Location     string
	Institution  string
	Skip         uint64
	Take         uint64
}

// Filter converts the query to a store filter. Unusable values are ignored.
func (q PublicListQuery) Filter() models.PersonFilter {
	filter := models.PersonFilter{
		Search:      strings.TrimSpace(q.Search),
		Occupation:  strings.TrimSpace(q.Occupation),
		Institution: strings.TrimSpace(q.Institution),
		Location:    strings.TrimSpace(q.Location),
		Gender:      strings.TrimSpace(q.Gender),
		Offset:      q.Skip,
		Limit:       q.Take,
		OrderByDate: true,
	}
	if age, err := strconv.Atoi(strings.TrimSpace(q.Age)); err == nil && age > 0 {
		filter.MaxAge = age
	}
	if it := strings.TrimSpace(q.IncidentType); it != "" {
		if t, ok := models.ParseIncidentType(it); ok && t == models.IncidentDeath {
			filter.IncidentType = models.IncidentDeath
		} else {
			filter.IncidentType = models.IncidentInjured
		}
	}
	return filter
}

// PublicService serves the anonymous memorial pages
type PublicService interface {
	ListPeople(ctx context.Context, q PublicListQuery) ([]dto.PublicPerson, int64, error)
	GetPerson(ctx context.Context, id int64) (*dto.PublicPersonDetail, error)
	ListReferences(ctx context.Context, kind models.ReferenceKind) ([]dto.ReferenceOption, error)
	TotalVisits(ctx context.Context) (int64, error)
}

type publicServiceImpl struct {
	people     PersonStore
	references ReferenceService
	visitors   VisitorStore
}

// NewPublicService creates a PublicService
func NewPublicService(people PersonStore, references ReferenceService, visitors VisitorStore) PublicService {
	return &publicServiceImpl{people: people, references: references, visitors: visitors}
}

// ListPeople returns one page of VERIFIED records ordered by incident date
func (s *publicServiceImpl) ListPeople(ctx context.Context, q PublicListQuery) ([]dto.PublicPerson, int64, error) {
	records, total, err := s.people.ListPublicPeople(ctx, q.Filter())
	if err != nil {
		return nil, 0, err
	}

	people := make([]dto.PublicPerson, 0, len(records))
	for i := range records {
		people = append(people, dto.FromPersonDetail(&records[i]))
	}
	return people, total, nil
}

// GetPerson returns a VERIFIED record; anything else is reported as not found
func (s *publicServiceImpl) GetPerson(ctx context.Context, id int64) (*dto.PublicPersonDetail, error) {
	detail, err := s.people.GetPersonDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Status != models.StatusVerified {
		return nil, apperrors.ErrPersonNotFound
	}
	return dto.ToPublicPersonDetail(detail), nil
}

// ListReferences returns the id and title of every item of kind
func (s *publicServiceImpl) ListReferences(ctx context.Context, kind models.ReferenceKind) ([]dto.ReferenceOption, error) {
	items, err := s.references.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return dto.NewReferenceOptions(items), nil
}

// TotalVisits returns the visit counter shown in the footer
func (s *publicServiceImpl) TotalVisits(ctx context.Context) (int64, error) {
	return s.visitors.TotalVisits(ctx)
}
