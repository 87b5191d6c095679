package models

import "time"

// Person is one memorialised record from the 'people' table.
// Optional columns are pointers so that absent values serialise as null.
type Person struct {
	ID                  int64        `json:"id" db:"id" example:"1"`
	Name                *string      `json:"name" db:"name" example:"Abu Sayed"`
	Age                 *int         `json:"age" db:"age" example:"23"`
	Gender              *string      `json:"gender" db:"gender" example:"MALE"`
	Address             *string      `json:"address" db:"address"`
	PermanentAddress    *string      `json:"permanent_address" db:"permanent_address"`
	FathersName         *string      `json:"fathers_name" db:"fathers_name"`
	MothersName         *string      `json:"mothers_name" db:"mothers_name"`
	NID                 *string      `json:"nid" db:"nid"`
	FamilyMemberContact *string      `json:"family_member_contact" db:"family_member_contact"`
	OccupationID        *int64       `json:"occupation_id" db:"occupation_id"`
	InstitutionID       *int64       `json:"institution_id" db:"institution_id"`
	IncidentLocationID  *int64       `json:"incident_location_id" db:"incident_location_id"`
	IncidentType        IncidentType `json:"incident_type" db:"incident_type" example:"INJURED"`
	Status              RecordStatus `json:"status" db:"status" example:"PENDING"`
	Date                *time.Time   `json:"date" db:"date"`
	DateOfDeath         *time.Time   `json:"date_of_death" db:"date_of_death"`
	HowDied             *string      `json:"how_died" db:"how_died"`
	HowInjured          *string      `json:"how_injured" db:"how_injured"`
	Story               *string      `json:"story" db:"story"`
	Documentary         *string      `json:"documentary" db:"documentary"`
	ProfilePicture      *string      `json:"profile_picture" db:"profile_picture"`
	Gallery             []string     `json:"gallery" db:"gallery"`
	SubmittedByID       int64        `json:"submitted_by_id" db:"submitted_by_id" example:"7"`
	UpdatedByID         *int64       `json:"updated_by_id" db:"updated_by_id"`
	CreatedAt           time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at" db:"updated_at"`
}

// PersonDetail is a Person joined with the titles and user names it references
type PersonDetail struct {
	Person
	OccupationTitle       *string `json:"occupation_title"`
	InstitutionTitle      *string `json:"institution_title"`
	IncidentLocationTitle *string `json:"incident_location_title"`
	SubmittedByName       *string `json:"submitted_by_name"`
	UpdatedByName         *string `json:"updated_by_name"`
}

// PersonFilter narrows admin and public listings. Zero values mean "no filter".
type PersonFilter struct {
	Search        string
	Status        RecordStatus
	IncidentType  IncidentType
	Gender        string
	Occupation    string
	Institution   string
	Location      string
	MaxAge        int
	SubmittedByID int64
	Offset        uint64
	Limit         uint64
	// OrderByDate sorts by incident date ascending instead of newest first
	OrderByDate   bool
}

// PersonStats holds the dashboard counters
type PersonStats struct {
	ListedMartyrs      int64 `json:"listed_martyrs"`
	ListedInjured      int64 `json:"listed_injured"`
	PendingMartyrs     int64 `json:"pending_martyrs"`
	PendingInjured     int64 `json:"pending_injured"`
	TotalLocations     int64 `json:"total_locations"`
	TotalVisits        int64 `json:"total_visits"`
	TotalStories       int64 `json:"total_stories"`
	TotalDocumentaries int64 `json:"total_documentaries"`
}
