package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolationError(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func IsForeignKeyViolationError(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

// IsCheckViolationError also covers NOT NULL violations, both mean the row
// itself was rejected.
func IsCheckViolationError(err error) bool {
	code := pgErrorCode(err)
	return code == pgCheckViolation || code == pgNotNullViolation
}

// ViolatedConstraint returns the name of the constraint (or index) an
// integrity violation was raised for, empty for any other error.
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	switch pgErr.Code {
	case pgNotNullViolation:
		return pgErr.TableName + "." + pgErr.ColumnName
	case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
		return pgErr.ConstraintName
	}
	return ""
}
