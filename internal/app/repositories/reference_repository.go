package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/db"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/dberrors"
	"github.com/yigit/memorial/internal/pkg/logger"
)

// ReferenceRepository stores one of the title lookup tables
type ReferenceRepository struct {
	db    db.DBTX
	sb    squirrel.StatementBuilderType
	kind  models.ReferenceKind
	table string
}

// NewReferenceRepository creates a repository bound to kind's table
func NewReferenceRepository(db db.DBTX, kind models.ReferenceKind) *ReferenceRepository {
	return &ReferenceRepository{
		db:    db,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		kind:  kind,
		table: kind.Table(),
	}
}

// Kind returns the lookup table this repository serves
func (r *ReferenceRepository) Kind() models.ReferenceKind {
	return r.kind
}

// List returns every item ordered by title
func (r *ReferenceRepository) List(ctx context.Context) ([]models.ReferenceItem, error) {
	sql, args, err := r.sb.Select("id", "title", "created_by_id", "created_at").
		From(r.table).
		OrderBy("title ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table).Msg("Error building list reference SQL")
		return nil, fmt.Errorf("failed to build list %s query: %w", r.table, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	defer rows.Close()

	items := []models.ReferenceItem{}
	for rows.Next() {
		var item models.ReferenceItem
		if err := rows.Scan(&item.ID, &item.Title, &item.CreatedByID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", r.table, err)
	}

	return items, nil
}

// Create inserts an item; a duplicate title yields apperrors.ErrResourceAlreadyExists
func (r *ReferenceRepository) Create(ctx context.Context, item *models.ReferenceItem) error {
	sql, args, err := r.sb.Insert(r.table).
		Columns("title", "created_by_id").
		Values(item.Title, item.CreatedByID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table).Msg("Error building create reference SQL")
		return fmt.Errorf("failed to build create %s query: %w", r.table, err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return r.translate(err, "create")
	}
	return nil
}

// EnsureTitle inserts title unless present and returns its id
func (r *ReferenceRepository) EnsureTitle(ctx context.Context, title string, createdByID *int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (title, created_by_id) VALUES ($1, $2)
		ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id`, r.table),
		title, createdByID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to ensure %s %q: %w", r.table, title, err)
	}
	return id, nil
}

// UpdateTitle renames an item
func (r *ReferenceRepository) UpdateTitle(ctx context.Context, id int64, title string) (*models.ReferenceItem, error) {
	sql, args, err := r.sb.Update(r.table).
		Set("title", title).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, title, created_by_id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table).Msg("Error building update reference SQL")
		return nil, fmt.Errorf("failed to build update %s query: %w", r.table, err)
	}

	var item models.ReferenceItem
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.Title, &item.CreatedByID, &item.CreatedAt); err != nil {
		return nil, r.translate(err, "update")
	}
	return &item, nil
}

// Delete removes an item; one still referenced by people yields apperrors.ErrResourceInUse
func (r *ReferenceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete(r.table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table).Msg("Error building delete reference SQL")
		return fmt.Errorf("failed to build delete %s query: %w", r.table, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return r.translate(err, "delete")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", r.kind, id))
	}
	return nil
}

// Count returns the number of items
func (r *ReferenceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}
	return n, nil
}

func (r *ReferenceRepository) translate(err error, op string) error {
	switch {
	case dberrors.IsNoRows(err):
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("%s not found", r.kind))
	case dberrors.IsDuplicateConstraintError(err, ""):
		return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, fmt.Sprintf("%s with this title already exists", r.kind))
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewCustomError(apperrors.ErrResourceInUse, fmt.Sprintf("%s is still referenced by people records", r.kind))
	}
	logger.Error().Err(err).Str("table", r.table).Str("op", op).Msg("Reference query failed")
	return fmt.Errorf("failed to %s %s: %w", op, r.table, err)
}
