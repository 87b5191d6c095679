package auth

import (
	"fmt"

	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/apperrors"
)

// Principal identifies the authenticated caller of an operation
type Principal struct {
	UserID int64
	Role   models.RoleType
	Name   string
}

// IsAdmin reports whether the caller holds the ADMIN role
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanViewPerson allows admins and the user who submitted the record
func CanViewPerson(p Principal, person *models.Person) bool {
	if person == nil {
		return false
	}
	return p.IsAdmin() || (p.UserID > 0 && person.SubmittedByID == p.UserID)
}

// ValidateViewPerson returns apperrors.ErrPermissionDenied unless CanViewPerson holds
func ValidateViewPerson(p Principal, person *models.Person) error {
	if !CanViewPerson(p, person) {
		return apperrors.NewForbiddenError("you don't have permission to view this record")
	}
	return nil
}

// ValidateAdmin returns apperrors.ErrPermissionDenied for non-admin callers
func ValidateAdmin(p Principal, action string) error {
	if !p.IsAdmin() {
		return apperrors.NewForbiddenError(fmt.Sprintf("only administrators can %s", action))
	}
	return nil
}

// SubmissionStatus decides the status of a new record. Only admins may pick one;
// everyone else submits for review.
func SubmissionStatus(p Principal, requested *string) (models.RecordStatus, error) {
	if !p.IsAdmin() || requested == nil || *requested == "" {
		return models.StatusPending, nil
	}
	status, ok := models.ParseRecordStatus(*requested)
	if !ok {
		return "", apperrors.NewValidationError("status", "status must be PENDING or VERIFIED")
	}
	return status, nil
}
