package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrVersionConflict is returned when a conditional content update finds a
// stale version. The stored row is left untouched.
var ErrVersionConflict = errors.New("repository: stale version, content update rejected")

// PostgreSQL SQLSTATE codes that indicate the transaction lost a race and
// can be retried as a whole.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// pgUniqueViolation is the SQLSTATE for a duplicate key.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
// The string check covers the sqlite driver used in tests, which reports
// no SQLSTATE.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsSerializationFailure reports whether err is a transaction-isolation
// abort (serialization failure or deadlock). Callers retry the whole
// transaction a bounded number of times before surfacing the conflict.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}
