package services

import (
	"context"
	"time"

	"github.com/yigit/memorial/internal/app/models"
)

// Services defined in this package:
// - AuthService: registration, login and session lookup
// - PersonService: people record CRUD, moderation and dashboard statistics
// - PublicService: the anonymous read-only listing
// - ReferenceService: occupations, institutions and incident locations
// - ImportService: CSV bulk import
// - VisitorService: visitor tracking
// - UploadService: profile picture and gallery uploads

// The store interfaces below are satisfied by the repositories package.

// UserStore persists accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PersonStore persists people records
type PersonStore interface {
	CreatePerson(ctx context.Context, p *models.Person) error
	GetPersonDetail(ctx context.Context, id int64) (*models.PersonDetail, error)
	ListPeople(ctx context.Context, filter models.PersonFilter) ([]models.PersonDetail, int64, error)
	ListPublicPeople(ctx context.Context, filter models.PersonFilter) ([]models.PersonDetail, int64, error)
	UpdatePerson(ctx context.Context, p *models.Person) error
	SetStatus(ctx context.Context, id int64, status models.RecordStatus, updatedByID int64) error
	DeletePerson(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*models.PersonStats, error)
}

// PeopleBulkInserter writes import batches, skipping duplicates
type PeopleBulkInserter interface {
	BulkInsertPeople(ctx context.Context, people []models.Person) (int64, error)
}

// ReferenceStore persists one title lookup table
type ReferenceStore interface {
	Kind() models.ReferenceKind
	List(ctx context.Context) ([]models.ReferenceItem, error)
	Create(ctx context.Context, item *models.ReferenceItem) error
	UpdateTitle(ctx context.Context, id int64, title string) (*models.ReferenceItem, error)
	Delete(ctx context.Context, id int64) error
}

// VisitorStore persists tracked visitors
type VisitorStore interface {
	GetVisitorByIP(ctx context.Context, ip string) (*models.Visitor, error)
	CreateVisitor(ctx context.Context, v *models.Visitor) error
	IncrementVisit(ctx context.Context, id int64, at time.Time) error
	ListVisitors(ctx context.Context) ([]models.Visitor, error)
	TotalVisits(ctx context.Context) (int64, error)
}
