package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/pkg/geo"
)

type mockPersonStore struct {
	mock.Mock
}

func (m *mockPersonStore) CreatePerson(ctx context.Context, p *models.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPersonStore) GetPersonDetail(ctx context.Context, id int64) (*models.PersonDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonDetail), args.Error(1)
}

func (m *mockPersonStore) ListPeople(ctx context.Context, filter models.PersonFilter) ([]models.PersonDetail, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.PersonDetail), args.Get(1).(int64), args.Error(2)
}

func (m *mockPersonStore) ListPublicPeople(ctx context.Context, filter models.PersonFilter) ([]models.PersonDetail, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.PersonDetail), args.Get(1).(int64), args.Error(2)
}

func (m *mockPersonStore) UpdatePerson(ctx context.Context, p *models.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPersonStore) SetStatus(ctx context.Context, id int64, status models.RecordStatus, updatedByID int64) error {
	args := m.Called(ctx, id, status, updatedByID)
	return args.Error(0)
}

func (m *mockPersonStore) DeletePerson(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPersonStore) GetStats(ctx context.Context) (*models.PersonStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PersonStats), args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockReferenceStore struct {
	mock.Mock
	kind models.ReferenceKind
}

func (m *mockReferenceStore) Kind() models.ReferenceKind {
	return m.kind
}

func (m *mockReferenceStore) List(ctx context.Context) ([]models.ReferenceItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReferenceItem), args.Error(1)
}

func (m *mockReferenceStore) Create(ctx context.Context, item *models.ReferenceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockReferenceStore) UpdateTitle(ctx context.Context, id int64, title string) (*models.ReferenceItem, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReferenceItem), args.Error(1)
}

func (m *mockReferenceStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVisitorStore struct {
	mock.Mock
}

func (m *mockVisitorStore) GetVisitorByIP(ctx context.Context, ip string) (*models.Visitor, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visitor), args.Error(1)
}

func (m *mockVisitorStore) CreateVisitor(ctx context.Context, v *models.Visitor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVisitorStore) IncrementVisit(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockVisitorStore) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Visitor), args.Error(1)
}

func (m *mockVisitorStore) TotalVisits(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockGeoLocator struct {
	mock.Mock
}

func (m *mockGeoLocator) Lookup(ctx context.Context, ip string) (geo.Location, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(geo.Location), args.Error(1)
}

type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockObjectStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockObjectStorage) URL(key string) string {
	return "/uploads/" + key
}

// batchRecorder keeps every batch it receives. inserted decides how many rows of a
// batch count as written; nil means all of them.
type batchRecorder struct {
	mu       sync.Mutex
	batches  [][]models.Person
	inserted func(batch []models.Person) int64
	failOn   int
	err      error
}

func (r *batchRecorder) BulkInsertPeople(_ context.Context, people []models.Person) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batches = append(r.batches, people)
	if r.failOn > 0 && len(r.batches) == r.failOn {
		return 0, r.err
	}
	if r.inserted != nil {
		return r.inserted(people), nil
	}
	return int64(len(people)), nil
}

func (r *batchRecorder) sizes() []int {
	sizes := make([]int, len(r.batches))
	for i, b := range r.batches {
		sizes[i] = len(b)
	}
	return sizes
}
