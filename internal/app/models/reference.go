package models

import "time"

// ReferenceKind names one of the title-only lookup tables
type ReferenceKind string

const (
	ReferenceOccupation       ReferenceKind = "occupation"
	ReferenceInstitution      ReferenceKind = "institution"
	ReferenceIncidentLocation ReferenceKind = "incident_location"
)

// Table returns the backing table for the kind
func (k ReferenceKind) Table() string {
	switch k {
	case ReferenceOccupation:
		return "occupations"
	case ReferenceInstitution:
		return "institutions"
	case ReferenceIncidentLocation:
		return "incident_locations"
	}
	return ""
}

// ReferenceItem is a row of occupations, institutions or incident_locations
type ReferenceItem struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Student"`
	CreatedByID *int64    `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
