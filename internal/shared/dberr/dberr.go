// Package dberr classifies Postgres errors surfaced through GORM.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const exclusionViolation = "23P01"

func code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionViolation reports an EXCLUDE constraint hit, such as two
// overlapping date ranges for the same membership.
func IsExclusionViolation(err error) bool {
	return code(err) == exclusionViolation
}

// ConstraintName returns the violated constraint, or "" for other errors.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
