package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/db"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/dberrors"
	"github.com/yigit/memorial/internal/pkg/helpers"
	"github.com/yigit/memorial/internal/pkg/logger"
)

// personWriteColumns is the column order used by inserts and updates
var personWriteColumns = []string{
	"name", "age", "gender", "address", "permanent_address", "fathers_name", "mothers_name",
	"nid", "family_member_contact", "occupation_id", "institution_id", "incident_location_id",
	"incident_type", "status", "date", "date_of_death", "how_died", "how_injured", "story",
	"documentary", "profile_picture", "gallery", "submitted_by_id",
}

var personDetailColumns = []string{
	"p.id", "p.name", "p.age", "p.gender", "p.address", "p.permanent_address", "p.fathers_name",
	"p.mothers_name", "p.nid", "p.family_member_contact", "p.occupation_id", "p.institution_id",
	"p.incident_location_id", "p.incident_type", "p.status", "p.date", "p.date_of_death",
	"p.how_died", "p.how_injured", "p.story", "p.documentary", "p.profile_picture", "p.gallery",
	"p.submitted_by_id", "p.updated_by_id", "p.created_at", "p.updated_at",
	"o.title", "i.title", "l.title", "su.name", "uu.name",
}

// rowScanner is implemented by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// PersonRepository handles database operations for people records
type PersonRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db db.DBTX) *PersonRepository {
	return &PersonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func personValues(p *models.Person) []interface{} {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return []interface{}{
		p.Name, p.Age, p.Gender, p.Address, p.PermanentAddress, p.FathersName, p.MothersName,
		p.NID, p.FamilyMemberContact, p.OccupationID, p.InstitutionID, p.IncidentLocationID,
		string(p.IncidentType), string(p.Status), p.Date, p.DateOfDeath, p.HowDied, p.HowInjured, p.Story,
		p.Documentary, p.ProfilePicture, gallery, p.SubmittedByID,
	}
}

// CreatePerson inserts a record and fills in its id and timestamps
func (r *PersonRepository) CreatePerson(ctx context.Context, p *models.Person) error {
	sql, args, err := r.sb.Insert("people").
		Columns(personWriteColumns...).
		Values(personValues(p)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create person SQL")
		return fmt.Errorf("failed to build create person query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translatePersonError(err, "create")
	}
	return nil
}

// BulkInsertPeople inserts people in one statement, skipping rows that collide with a unique key.
// It returns the number of rows actually written.
func (r *PersonRepository) BulkInsertPeople(ctx context.Context, people []models.Person) (int64, error) {
	if len(people) == 0 {
		return 0, nil
	}

	builder := r.sb.Insert("people").Columns(personWriteColumns...)
	for i := range people {
		builder = builder.Values(personValues(&people[i])...)
	}

	sql, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building bulk insert people SQL")
		return 0, fmt.Errorf("failed to build bulk insert query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, translatePersonError(err, "bulk insert")
	}
	return tag.RowsAffected(), nil
}

func (r *PersonRepository) detailQuery() squirrel.SelectBuilder {
	return r.sb.Select(personDetailColumns...).
		From("people p").
		LeftJoin("occupations o ON o.id = p.occupation_id").
		LeftJoin("institutions i ON i.id = p.institution_id").
		LeftJoin("incident_locations l ON l.id = p.incident_location_id").
		LeftJoin("users su ON su.id = p.submitted_by_id").
		LeftJoin("users uu ON uu.id = p.updated_by_id")
}

func scanPersonDetail(row rowScanner) (*models.PersonDetail, error) {
	d := &models.PersonDetail{}
	var incidentType, status string
	err := row.Scan(
		&d.ID, &d.Name, &d.Age, &d.Gender, &d.Address, &d.PermanentAddress, &d.FathersName,
		&d.MothersName, &d.NID, &d.FamilyMemberContact, &d.OccupationID, &d.InstitutionID,
		&d.IncidentLocationID, &incidentType, &status, &d.Date, &d.DateOfDeath,
		&d.HowDied, &d.HowInjured, &d.Story, &d.Documentary, &d.ProfilePicture, &d.Gallery,
		&d.SubmittedByID, &d.UpdatedByID, &d.CreatedAt, &d.UpdatedAt,
		&d.OccupationTitle, &d.InstitutionTitle, &d.IncidentLocationTitle, &d.SubmittedByName, &d.UpdatedByName,
	)
	if err != nil {
		return nil, err
	}
	d.IncidentType = models.IncidentType(incidentType)
	d.Status = models.RecordStatus(status)
	if d.Gallery == nil {
		d.Gallery = []string{}
	}
	return d, nil
}

// GetPersonDetail retrieves one record with its joined titles and user names
func (r *PersonRepository) GetPersonDetail(ctx context.Context, id int64) (*models.PersonDetail, error) {
	sql, args, err := r.detailQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get person SQL")
		return nil, fmt.Errorf("failed to build get person query: %w", err)
	}

	detail, err := scanPersonDetail(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, fmt.Errorf("error retrieving person: %w", err)
	}
	return detail, nil
}

// ListPeople returns one page of records matching the admin filter plus the total match count
func (r *PersonRepository) ListPeople(ctx context.Context, filter models.PersonFilter) ([]models.PersonDetail, int64, error) {
	return r.list(ctx, adminConditions(filter), filter)
}

// ListPublicPeople returns one page of VERIFIED records matching the public filter plus the total match count
func (r *PersonRepository) ListPublicPeople(ctx context.Context, filter models.PersonFilter) ([]models.PersonDetail, int64, error) {
	filter.Status = models.StatusVerified
	return r.list(ctx, publicConditions(filter), filter)
}

func (r *PersonRepository) list(ctx context.Context, where squirrel.And, filter models.PersonFilter) ([]models.PersonDetail, int64, error) {
	countBuilder := r.sb.Select("COUNT(*)").
		From("people p").
		LeftJoin("occupations o ON o.id = p.occupation_id").
		LeftJoin("institutions i ON i.id = p.institution_id").
		LeftJoin("incident_locations l ON l.id = p.incident_location_id")
	query := r.detailQuery()
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
		query = query.Where(where)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count people SQL")
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}

	if filter.OrderByDate {
		query = query.OrderBy("p.date ASC NULLS LAST", "p.id ASC")
	} else {
		query = query.OrderBy("p.created_at DESC", "p.id DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	query = query.Offset(filter.Offset)

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list people SQL")
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []models.PersonDetail{}
	for rows.Next() {
		detail, err := scanPersonDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan person row: %w", err)
		}
		people = append(people, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, total, nil
}

func adminConditions(f models.PersonFilter) squirrel.And {
	where := squirrel.And{}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := helpers.LikePattern(s)
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.nid": pattern},
		})
	}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"p.status": string(f.Status)})
	}
	if f.IncidentType != "" {
		where = append(where, squirrel.Eq{"p.incident_type": string(f.IncidentType)})
	}
	if f.SubmittedByID > 0 {
		where = append(where, squirrel.Eq{"p.submitted_by_id": f.SubmittedByID})
	}
	return where
}

func publicConditions(f models.PersonFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"p.status": string(f.Status)}}

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := helpers.LikePattern(s)
		anyOf := squirrel.Or{
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"o.title": pattern},
			squirrel.ILike{"i.title": pattern},
			squirrel.ILike{"l.title": pattern},
			squirrel.Eq{"p.gender": strings.ToUpper(s)},
			squirrel.Eq{"p.incident_type": strings.ToUpper(s)},
		}
		if age, err := strconv.Atoi(s); err == nil {
			anyOf = append(anyOf, squirrel.Eq{"p.age": age})
		}
		where = append(where, anyOf)
	}
	if f.MaxAge > 0 {
		where = append(where, squirrel.Or{
			squirrel.And{squirrel.GtOrEq{"p.age": 1}, squirrel.LtOrEq{"p.age": f.MaxAge}},
			squirrel.Eq{"p.age": nil},
		})
	}
	if f.Occupation != "" {
		where = append(where, squirrel.ILike{"o.title": helpers.LikePattern(f.Occupation)})
	}
	if f.Institution != "" {
		where = append(where, squirrel.ILike{"i.title": helpers.LikePattern(f.Institution)})
	}
	if f.Location != "" {
		where = append(where, squirrel.ILike{"l.title": helpers.LikePattern(f.Location)})
	}
	if f.Gender != "" {
		where = append(where, squirrel.Eq{"p.gender": strings.ToUpper(f.Gender)})
	}
	if f.IncidentType != "" {
		where = append(where, squirrel.Eq{"p.incident_type": string(f.IncidentType)})
	}
	return where
}

// UpdatePerson overwrites every editable column of the record and stamps the updater
func (r *PersonRepository) UpdatePerson(ctx context.Context, p *models.Person) error {
	values := personValues(p)
	update := r.sb.Update("people")
	// submitted_by_id is the last write column and never changes on update
	for i, col := range personWriteColumns[:len(personWriteColumns)-1] {
		update = update.Set(col, values[i])
	}

	sql, args, err := update.
		Set("updated_by_id", p.UpdatedByID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING submitted_by_id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update person SQL")
		return fmt.Errorf("failed to build update person query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.SubmittedByID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translatePersonError(err, "update")
	}
	return nil
}

// SetStatus moves a record to status, stamping the updater
func (r *PersonRepository) SetStatus(ctx context.Context, id int64, status models.RecordStatus, updatedByID int64) error {
	sql, args, err := r.sb.Update("people").
		Set("status", string(status)).
		Set("updated_by_id", updatedByID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set status SQL")
		return fmt.Errorf("failed to build set status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translatePersonError(err, "update status of")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// DeletePerson removes a record
func (r *PersonRepository) DeletePerson(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("people").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete person SQL")
		return fmt.Errorf("failed to build delete person query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// GetStats computes the dashboard counters in one round trip
func (r *PersonRepository) GetStats(ctx context.Context) (*models.PersonStats, error) {
	const query = `
	SELECT
		COUNT(*) FILTER (WHERE status = 'VERIFIED' AND incident_type = 'DEATH'),
		COUNT(*) FILTER (WHERE status = 'VERIFIED' AND incident_type = 'INJURED'),
		COUNT(*) FILTER (WHERE status = 'PENDING' AND incident_type = 'DEATH'),
		COUNT(*) FILTER (WHERE status = 'PENDING' AND incident_type = 'INJURED'),
		(SELECT COUNT(*) FROM incident_locations),
		(SELECT COALESCE(SUM(visit_count), 0) FROM visitors),
		COUNT(*) FILTER (WHERE COALESCE(story, '') <> ''),
		COUNT(*) FILTER (WHERE COALESCE(documentary, '') <> '')
	FROM people`

	stats := &models.PersonStats{}
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.ListedMartyrs, &stats.ListedInjured, &stats.PendingMartyrs, &stats.PendingInjured,
		&stats.TotalLocations, &stats.TotalVisits, &stats.TotalStories, &stats.TotalDocumentaries,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

func translatePersonError(err error, op string) error {
	switch {
	case dberrors.IsNoRows(err):
		return apperrors.ErrPersonNotFound
	case dberrors.IsDuplicateConstraintError(err, "people_nid_key"):
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "a person with this NID already exists")
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewValidationError("reference", "referenced occupation, institution, location or user does not exist")
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("incident_type", "incident type or status is not an allowed value")
	}
	logger.Error().Err(err).Str("op", op).Msg("Person query failed")
	return fmt.Errorf("failed to %s person: %w", op, err)
}
