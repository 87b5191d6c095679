package models

import "strings"

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin  RoleType = "ADMIN"
	RoleVendor RoleType = "VENDOR"
	RoleUser   RoleType = "USER"
)

// Roles lists every role the system recognises
var Roles = []RoleType{RoleAdmin, RoleVendor, RoleUser}

// IsValid reports whether r is one of the enumerated roles
func (r RoleType) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleUser:
		return true
	}
	return false
}

// IncidentType classifies what happened to a person
type IncidentType string

const (
	IncidentDeath   IncidentType = "DEATH"
	IncidentInjured IncidentType = "INJURED"
)

// ParseIncidentType accepts the enum values case-insensitively, plus MARTYR as an alias of DEATH
func ParseIncidentType(value string) (IncidentType, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(IncidentDeath), "MARTYR":
		return IncidentDeath, true
	case string(IncidentInjured):
		return IncidentInjured, true
	}
	return "", false
}

// RecordStatus is the moderation state of a person record
type RecordStatus string

const (
	StatusPending  RecordStatus = "PENDING"
	StatusVerified RecordStatus = "VERIFIED"
)

// ParseRecordStatus accepts the enum values case-insensitively
func ParseRecordStatus(value string) (RecordStatus, bool) {
	switch RecordStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, true
	case StatusVerified:
		return StatusVerified, true
	}
	return "", false
}
