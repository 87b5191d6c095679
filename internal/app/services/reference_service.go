package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/memorial/internal/app/auth"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/validation"
)

// ReferenceService manages the occupation, institution and incident location lists
type ReferenceService interface {
	List(ctx context.Context, kind models.ReferenceKind) ([]models.ReferenceItem, error)
	Create(ctx context.Context, caller appauth.Principal, kind models.ReferenceKind, title string) (*models.ReferenceItem, error)
	Update(ctx context.Context, caller appauth.Principal, kind models.ReferenceKind, id int64, title string) (*models.ReferenceItem, error)
	Delete(ctx context.Context, caller appauth.Principal, kind models.ReferenceKind, id int64) error
}

type referenceServiceImpl struct {
	stores map[models.ReferenceKind]ReferenceStore
	logger zerolog.Logger
}

// NewReferenceService creates a ReferenceService over one store per kind
func NewReferenceService(logger zerolog.Logger, stores ...ReferenceStore) ReferenceService {
	byKind := make(map[models.ReferenceKind]ReferenceStore, len(stores))
	for _, store := range stores {
		byKind[store.Kind()] = store
	}
	return &referenceServiceImpl{stores: byKind, logger: logger}
}

func (s *referenceServiceImpl) store(kind models.ReferenceKind) (ReferenceStore, error) {
	store, ok := s.stores[kind]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("unknown reference list %q", kind))
	}
	return store, nil
}

func validateTitle(title string) (string, error) {
	v := validation.NewStringValidation("title", title).WithMaxLength(validation.TitleMaxLength)
	if err := v.Validate(); err != nil {
		return "", err
	}
	return v.Value, nil
}

// List returns every item of kind ordered by title
func (s *referenceServiceImpl) List(ctx context.Context, kind models.ReferenceKind) ([]models.ReferenceItem, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// Create adds a titled item owned by the caller
func (s *referenceServiceImpl) Create(ctx context.Context, caller appauth.Principal, kind models.ReferenceKind, title string) (*models.ReferenceItem, error) {
	if err := appauth.ValidateAdmin(caller, fmt.Sprintf("create %s entries", kind)); err != nil {
		return nil, err
	}
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	title, err = validateTitle(title)
	if err != nil {
		return nil, err
	}

	item := &models.ReferenceItem{Title: title, CreatedByID: &caller.UserID}
	if err := store.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Str("kind", string(kind)).Int64("id", item.ID).Str("title", title).Msg("Reference item created")
	return item, nil
}

// Update renames an item
func (s *referenceServiceImpl) Update(ctx context.Context, caller appauth.Principal, kind models.ReferenceKind, id int64, title string) (*models.ReferenceItem, error) {
	if err := appauth.ValidateAdmin(caller, fmt.Sprintf("update %s entries", kind)); err != nil {
		return nil, err
	}
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.NewValidationError("id", "id must be positive")
	}
	title, err = validateTitle(title)
	if err != nil {
		return nil, err
	}
	return store.UpdateTitle(ctx, id, title)
}

// Delete removes an item that no record references
func (s *referenceServiceImpl) Delete(ctx context.Context, caller appauth.Principal, kind models.ReferenceKind, id int64) error {
	if err := appauth.ValidateAdmin(caller, fmt.Sprintf("delete %s entries", kind)); err != nil {
		return err
	}
	store, err := s.store(kind)
	if err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.NewValidationError("id", "id must be positive")
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("kind", string(kind)).Int64("id", id).Msg("Reference item deleted")
	return nil
}
