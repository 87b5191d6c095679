package dto

import (
	"time"

	"github.com/yigit/memorial/internal/app/models"
)

// PersonFields are the editable columns shared by create and update requests
type PersonFields struct {
	Name                string   `json:"name" binding:"required,notblank,max=255" example:"Abu Sayed"`
	IncidentType        string   `json:"incident_type" binding:"required,incident_type" example:"DEATH"`
	Age                 *int     `json:"age" binding:"omitempty,min=0,max=150" example:"23"`
	Gender              *string  `json:"gender" example:"MALE"`
	Address             *string  `json:"address"`
	PermanentAddress    *string  `json:"permanent_address"`
	FathersName         *string  `json:"fathers_name"`
	MothersName         *string  `json:"mothers_name"`
	NID                 *string  `json:"nid"`
	FamilyMemberContact *string  `json:"family_member_contact"`
	OccupationID        *int64   `json:"occupation_id"`
	InstitutionID       *int64   `json:"institution_id"`
	IncidentLocationID  *int64   `json:"incident_location_id"`
	Date                *string  `json:"date" example:"2024-07-16"`
	DateOfDeath         *string  `json:"date_of_death" example:"2024-07-16"`
	HowDied             *string  `json:"how_died"`
	HowInjured          *string  `json:"how_injured"`
	Story               *string  `json:"story"`
	Documentary         *string  `json:"documentary"`
	ProfilePicture      *string  `json:"profile_picture"`
	Gallery             []string `json:"gallery"`
}

// CreatePersonRequest is the body of POST /people
type CreatePersonRequest struct {
	PersonFields
	Status *string `json:"status" binding:"omitempty,record_status" example:"PENDING"`
}

// UpdatePersonRequest is the body of PATCH /people/{id}
type UpdatePersonRequest struct {
	PersonFields
	Status string `json:"status" binding:"required,record_status" example:"VERIFIED"`
}

// PublicPerson is the card shown in public listings
type PublicPerson struct {
	ID                    int64               `json:"id" example:"1"`
	Name                  *string             `json:"name" example:"Abu Sayed"`
	Age                   *int                `json:"age" example:"23"`
	Gender                *string             `json:"gender" example:"MALE"`
	IncidentType          models.IncidentType `json:"incident_type" example:"DEATH"`
	Date                  *time.Time          `json:"date"`
	ProfilePicture        *string             `json:"profile_picture"`
	OccupationTitle       *string             `json:"occupation"`
	InstitutionTitle      *string             `json:"institution"`
	IncidentLocationTitle *string             `json:"incident_location"`
}

// PublicPersonDetail adds the narrative fields shown on a public detail page
type PublicPersonDetail struct {
	PublicPerson
	DateOfDeath *time.Time `json:"date_of_death"`
	HowDied     *string    `json:"how_died"`
	HowInjured  *string    `json:"how_injured"`
	Story       *string    `json:"story"`
	Documentary *string    `json:"documentary"`
	Gallery     []string   `json:"gallery"`
}

// PublicListResponse is the body of GET /public/lists
type PublicListResponse struct {
	Success    bool           `json:"success" example:"true"`
	People     []PublicPerson `json:"people"`
	TotalCount int64          `json:"totalCount" example:"120"`
}

// PublicDetailResponse is the body of GET /public/lists/{id}
type PublicDetailResponse struct {
	Success bool                `json:"success" example:"true"`
	Person  *PublicPersonDetail `json:"person"`
}

// FromPersonDetail projects a joined record onto its public card
func FromPersonDetail(p *models.PersonDetail) PublicPerson {
	return PublicPerson{
		ID:                    p.ID,
		Name:                  p.Name,
		Age:                   p.Age,
		Gender:                p.Gender,
		IncidentType:          p.IncidentType,
		Date:                  p.Date,
		ProfilePicture:        p.ProfilePicture,
		OccupationTitle:       p.OccupationTitle,
		InstitutionTitle:      p.InstitutionTitle,
		IncidentLocationTitle: p.IncidentLocationTitle,
	}
}

// ToPublicPersonDetail projects a joined record onto its public detail view
func ToPublicPersonDetail(p *models.PersonDetail) *PublicPersonDetail {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return &PublicPersonDetail{
		PublicPerson: FromPersonDetail(p),
		DateOfDeath:  p.DateOfDeath,
		HowDied:      p.HowDied,
		HowInjured:   p.HowInjured,
		Story:        p.Story,
		Documentary:  p.Documentary,
		Gallery:      gallery,
	}
}
