package services

import (
	"time"

	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/csvstream"
	"github.com/yigit/memorial/internal/pkg/helpers"
)

// BirthDateColumns are the header names accepted for the date of birth, in priority order
var BirthDateColumns = []string{"Dob", "dob", "DOB", "date_of_birth"}

// TransformRow maps one CSV row onto a person record. It never fails: values that are
// missing or cannot be parsed become nil, and enumerations fall back to their defaults.
// The same row, submitter and now always produce the same record.
func TransformRow(row csvstream.Row, submitterID int64, now time.Time) models.Person {
	p := models.Person{
		Name:                text(row, "name"),
		Gender:              text(row, "gender"),
		Address:             text(row, "address"),
		PermanentAddress:    text(row, "permanent_address"),
		FathersName:         text(row, "fathers_name"),
		MothersName:         text(row, "mothers_name"),
		NID:                 text(row, "nid"),
		FamilyMemberContact: text(row, "family_member_contact"),
		OccupationID:        helpers.NullableInt64(row["occupation_id"]),
		InstitutionID:       helpers.NullableInt64(row["institution_id"]),
		IncidentLocationID:  helpers.NullableInt64(row["incident_location_id"]),
		IncidentType:        models.IncidentInjured,
		Status:              models.StatusPending,
		Date:                date(row, "date"),
		DateOfDeath:         date(row, "date_of_death"),
		HowDied:             text(row, "how_died"),
		HowInjured:          text(row, "how_injured"),
		Story:               text(row, "story"),
		Documentary:         text(row, "documentary"),
		ProfilePicture:      text(row, "profile_picture"),
		Gallery:             helpers.SplitList(row["gallery"]),
		SubmittedByID:       submitterID,
	}

	if birth, ok := helpers.ParseFlexibleDate(row.Get(BirthDateColumns...)); ok {
		age := helpers.AgeFromBirthDate(birth, now)
		p.Age = &age
	}
	if t, ok := models.ParseIncidentType(row["incident_type"]); ok {
		p.IncidentType = t
	}
	if s, ok := models.ParseRecordStatus(row["status"]); ok {
		p.Status = s
	}

	return p
}

func text(row csvstream.Row, column string) *string {
	return helpers.NullableString(row[column])
}

func date(row csvstream.Row, column string) *time.Time {
	t, ok := helpers.ParseFlexibleDate(row[column])
	if !ok {
		return nil
	}
	return &t
}
