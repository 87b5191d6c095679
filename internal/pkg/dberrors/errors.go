package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes used by the repositories
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if the error is a unique violation for a specific constraint.
// An empty constraintName matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgCode(err)
	if !ok || pgErr.Code != CodeUniqueViolation {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}

// IsForeignKeyViolation reports whether the error comes from a foreign key constraint
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeForeignKeyViolation
}

// IsCheckViolation reports whether the error comes from a CHECK constraint
func IsCheckViolation(err error) bool {
	pgErr, ok := pgCode(err)
	return ok && pgErr.Code == CodeCheckViolation
}

// IsNoRows reports whether a single-row query found nothing
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
