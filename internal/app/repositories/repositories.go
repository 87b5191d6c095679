package repositories

import (
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository             *UserRepository
	PersonRepository           *PersonRepository
	VisitorRepository          *VisitorRepository
	OccupationRepository       *ReferenceRepository
	InstitutionRepository      *ReferenceRepository
	IncidentLocationRepository *ReferenceRepository
}

// NewRepositories initializes all repositories over the same connection
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:             NewUserRepository(conn),
		PersonRepository:           NewPersonRepository(conn),
		VisitorRepository:          NewVisitorRepository(conn),
		OccupationRepository:       NewReferenceRepository(conn, models.ReferenceOccupation),
		InstitutionRepository:      NewReferenceRepository(conn, models.ReferenceInstitution),
		IncidentLocationRepository: NewReferenceRepository(conn, models.ReferenceIncidentLocation),
	}
}

// Reference returns the lookup repository for kind, or nil for an unknown kind
func (r *Repositories) Reference(kind models.ReferenceKind) *ReferenceRepository {
	switch kind {
	case models.ReferenceOccupation:
		return r.OccupationRepository
	case models.ReferenceInstitution:
		return r.InstitutionRepository
	case models.ReferenceIncidentLocation:
		return r.IncidentLocationRepository
	}
	return nil
}
