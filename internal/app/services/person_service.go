package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/memorial/internal/app/auth"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/app/models/dto"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/helpers"
	"github.com/yigit/memorial/internal/pkg/validation"
)

// PersonService manages people records on behalf of signed-in users
type PersonService interface {
	CreatePerson(ctx context.Context, caller appauth.Principal, req *dto.CreatePersonRequest) (*models.PersonDetail, error)
	ListPeople(ctx context.Context, caller appauth.Principal, filter models.PersonFilter) ([]models.PersonDetail, int64, error)
	ListMine(ctx context.Context, caller appauth.Principal, offset, limit uint64) ([]models.PersonDetail, int64, error)
	GetPerson(ctx context.Context, caller appauth.Principal, id int64) (*models.PersonDetail, error)
	UpdatePerson(ctx context.Context, caller appauth.Principal, id int64, req *dto.UpdatePersonRequest) (*models.PersonDetail, error)
	VerifyPerson(ctx context.Context, caller appauth.Principal, id int64) (*models.PersonDetail, error)
	DeletePerson(ctx context.Context, caller appauth.Principal, id int64) error
	GetStats(ctx context.Context, caller appauth.Principal) (*models.PersonStats, error)
}

type personServiceImpl struct {
	store  PersonStore
	logger zerolog.Logger
}

// NewPersonService creates a PersonService backed by store
func NewPersonService(store PersonStore, logger zerolog.Logger) PersonService {
	return &personServiceImpl{store: store, logger: logger}
}

// personFromFields validates the editable columns and maps them onto a record
func personFromFields(f *dto.PersonFields) (*models.Person, error) {
	if err := validation.NewStringValidation("name", f.Name).WithMaxLength(validation.NameMaxLength).Validate(); err != nil {
		return nil, err
	}

	incidentType, ok := models.ParseIncidentType(f.IncidentType)
	if !ok {
		return nil, apperrors.NewValidationError("incident_type", "incident_type must be DEATH or INJURED")
	}
	if f.Age != nil && (*f.Age < 0 || *f.Age > 150) {
		return nil, apperrors.NewValidationError("age", "age must be between 0 and 150")
	}

	date, err := optionalDate("date", f.Date)
	if err != nil {
		return nil, err
	}
	dateOfDeath, err := optionalDate("date_of_death", f.DateOfDeath)
	if err != nil {
		return nil, err
	}

	gallery := []string{}
	for _, item := range f.Gallery {
		if s := helpers.NullableString(item); s != nil {
			gallery = append(gallery, *s)
		}
	}

	return &models.Person{
		Name:                helpers.NullableString(f.Name),
		Age:                 f.Age,
		Gender:              helpers.NullableStringPtr(f.Gender),
		Address:             helpers.NullableStringPtr(f.Address),
		PermanentAddress:    helpers.NullableStringPtr(f.PermanentAddress),
		FathersName:         helpers.NullableStringPtr(f.FathersName),
		MothersName:         helpers.NullableStringPtr(f.MothersName),
		NID:                 helpers.NullableStringPtr(f.NID),
		FamilyMemberContact: helpers.NullableStringPtr(f.FamilyMemberContact),
		OccupationID:        f.OccupationID,
		InstitutionID:       f.InstitutionID,
		IncidentLocationID:  f.IncidentLocationID,
		IncidentType:        incidentType,
		Date:                date,
		DateOfDeath:         dateOfDeath,
		HowDied:             helpers.NullableStringPtr(f.HowDied),
		HowInjured:          helpers.NullableStringPtr(f.HowInjured),
		Story:               helpers.NullableStringPtr(f.Story),
		Documentary:         helpers.NullableStringPtr(f.Documentary),
		ProfilePicture:      helpers.NullableStringPtr(f.ProfilePicture),
		Gallery:             gallery,
	}, nil
}

func optionalDate(field string, value *string) (*time.Time, error) {
	if helpers.NullableStringPtr(value) == nil {
		return nil, nil
	}
	t := helpers.ParseOptionalDate(value)
	if t == nil {
		return nil, apperrors.NewValidationError(field, fmt.Sprintf("%s is not a valid date", field))
	}
	return t, nil
}

// CreatePerson stores a new submission owned by the caller
func (s *personServiceImpl) CreatePerson(ctx context.Context, caller appauth.Principal, req *dto.CreatePersonRequest) (*models.PersonDetail, error) {
	person, err := personFromFields(&req.PersonFields)
	if err != nil {
		return nil, err
	}

	person.Status, err = appauth.SubmissionStatus(caller, req.Status)
	if err != nil {
		return nil, err
	}
	person.SubmittedByID = caller.UserID

	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	s.logger.Info().
		Int64("personID", person.ID).
		Int64("submittedBy", caller.UserID).
		Str("status", string(person.Status)).
		Msg("Person record created")

	return s.store.GetPersonDetail(ctx, person.ID)
}

// ListPeople returns one page of all records for moderation
func (s *personServiceImpl) ListPeople(ctx context.Context, caller appauth.Principal, filter models.PersonFilter) ([]models.PersonDetail, int64, error) {
	if err := appauth.ValidateAdmin(caller, "list all records"); err != nil {
		return nil, 0, err
	}
	return s.store.ListPeople(ctx, filter)
}

// ListMine returns the records the caller submitted
func (s *personServiceImpl) ListMine(ctx context.Context, caller appauth.Principal, offset, limit uint64) ([]models.PersonDetail, int64, error) {
	if caller.UserID <= 0 {
		return nil, 0, apperrors.ErrTokenInvalid
	}
	return s.store.ListPeople(ctx, models.PersonFilter{
		SubmittedByID: caller.UserID,
		Offset:        offset,
		Limit:         limit,
	})
}

// GetPerson returns a record to an admin or to its submitter
func (s *personServiceImpl) GetPerson(ctx context.Context, caller appauth.Principal, id int64) (*models.PersonDetail, error) {
	detail, err := s.store.GetPersonDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appauth.ValidateViewPerson(caller, &detail.Person); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdatePerson overwrites a record with the request
func (s *personServiceImpl) UpdatePerson(ctx context.Context, caller appauth.Principal, id int64, req *dto.UpdatePersonRequest) (*models.PersonDetail, error) {
	if err := appauth.ValidateAdmin(caller, "update records"); err != nil {
		return nil, err
	}

	person, err := personFromFields(&req.PersonFields)
	if err != nil {
		return nil, err
	}
	status, ok := models.ParseRecordStatus(req.Status)
	if !ok {
		return nil, apperrors.NewValidationError("status", "status must be PENDING or VERIFIED")
	}

	person.ID = id
	person.Status = status
	person.UpdatedByID = &caller.UserID

	if err := s.store.UpdatePerson(ctx, person); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("personID", id).Int64("updatedBy", caller.UserID).Msg("Person record updated")
	return s.store.GetPersonDetail(ctx, id)
}

// VerifyPerson moves a PENDING record to VERIFIED
func (s *personServiceImpl) VerifyPerson(ctx context.Context, caller appauth.Principal, id int64) (*models.PersonDetail, error) {
	if err := appauth.ValidateAdmin(caller, "verify records"); err != nil {
		return nil, err
	}

	detail, err := s.store.GetPersonDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Status == models.StatusVerified {
		return nil, apperrors.ErrPersonAlreadyVerified
	}

	if err := s.store.SetStatus(ctx, id, models.StatusVerified, caller.UserID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("personID", id).Int64("verifiedBy", caller.UserID).Msg("Person record verified")
	return s.store.GetPersonDetail(ctx, id)
}

// DeletePerson removes a record
func (s *personServiceImpl) DeletePerson(ctx context.Context, caller appauth.Principal, id int64) error {
	if err := appauth.ValidateAdmin(caller, "delete records"); err != nil {
		return err
	}
	if err := s.store.DeletePerson(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrPersonNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete person %d: %w", id, err)
	}
	s.logger.Info().Int64("personID", id).Int64("deletedBy", caller.UserID).Msg("Person record deleted")
	return nil
}

// GetStats returns the dashboard counters
func (s *personServiceImpl) GetStats(ctx context.Context, caller appauth.Principal) (*models.PersonStats, error) {
	if err := appauth.ValidateAdmin(caller, "view statistics"); err != nil {
		return nil, err
	}
	return s.store.GetStats(ctx)
}
