package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/memorial/internal/app/models"
	"github.com/yigit/memorial/internal/db"
	"github.com/yigit/memorial/internal/pkg/apperrors"
	"github.com/yigit/memorial/internal/pkg/dberrors"
	"github.com/yigit/memorial/internal/pkg/logger"
)

var visitorColumns = []string{"id", "ip_address", "country", "region", "city", "visit_count", "visited_at"}

// VisitorRepository handles database operations for tracked visitors
type VisitorRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewVisitorRepository creates a new VisitorRepository
func NewVisitorRepository(db db.DBTX) *VisitorRepository {
	return &VisitorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanVisitor(row rowScanner) (*models.Visitor, error) {
	v := &models.Visitor{}
	if err := row.Scan(&v.ID, &v.IPAddress, &v.Country, &v.Region, &v.City, &v.VisitCount, &v.VisitedAt); err != nil {
		return nil, err
	}
	return v, nil
}

// GetVisitorByIP returns the visitor recorded for ip
func (r *VisitorRepository) GetVisitorByIP(ctx context.Context, ip string) (*models.Visitor, error) {
	sql, args, err := r.sb.Select(visitorColumns...).From("visitors").Where(squirrel.Eq{"ip_address": ip}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get visitor SQL")
		return nil, fmt.Errorf("failed to build get visitor query: %w", err)
	}

	v, err := scanVisitor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("visitor not found")
		}
		return nil, fmt.Errorf("error retrieving visitor: %w", err)
	}
	return v, nil
}

// CreateVisitor records a first visit. A concurrent insert for the same IP yields apperrors.ErrResourceAlreadyExists.
func (r *VisitorRepository) CreateVisitor(ctx context.Context, v *models.Visitor) error {
	sql, args, err := r.sb.Insert("visitors").
		Columns("ip_address", "country", "region", "city", "visit_count", "visited_at").
		Values(v.IPAddress, v.Country, v.Region, v.City, v.VisitCount, v.VisitedAt).
		Suffix("ON CONFLICT (ip_address) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create visitor SQL")
		return fmt.Errorf("failed to build create visitor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&v.ID); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating visitor: %w", err)
	}
	return nil
}

// IncrementVisit bumps the visit counter and moves visited_at to at
func (r *VisitorRepository) IncrementVisit(ctx context.Context, id int64, at time.Time) error {
	sql, args, err := r.sb.Update("visitors").
		Set("visit_count", squirrel.Expr("visit_count + 1")).
		Set("visited_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building increment visit SQL")
		return fmt.Errorf("failed to build increment visit query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating visitor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("visitor not found")
	}
	return nil
}

// ListVisitors returns every visitor, most recent first
func (r *VisitorRepository) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	sql, args, err := r.sb.Select(visitorColumns...).From("visitors").OrderBy("visited_at DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list visitors SQL")
		return nil, fmt.Errorf("failed to build list visitors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	defer rows.Close()

	visitors := []models.Visitor{}
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visitor row: %w", err)
		}
		visitors = append(visitors, *v)
	}
	return visitors, rows.Err()
}

// TotalVisits sums visit_count over all visitors
func (r *VisitorRepository) TotalVisits(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(visit_count), 0) FROM visitors`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum visits: %w", err)
	}
	return total, nil
}
