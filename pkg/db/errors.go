package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation.
// When a constraint name is given, the violation must be on that constraint.
// The sqlite driver used in tests reports violations as plain text, so the
// helper falls back to message matching when no Postgres error is present.
func IsUniqueViolation(err error, constraintName ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolationCode {
			return false
		}
		if len(constraintName) > 0 && constraintName[0] != "" {
			return pgErr.ConstraintName == constraintName[0]
		}
		return true
	}

	msg := err.Error()
	if len(constraintName) > 0 && constraintName[0] != "" {
		return strings.Contains(msg, constraintName[0])
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
