// Package apperrors defines the error taxonomy shared by all usecases.
// Every error is terminal for the current operation; callers translate
// into a response and must not leak internal identifiers for forbidden or
// not-found outcomes.
package apperrors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrValidation marks empty or invalid input, recoverable by the caller.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing entity or a cross-entity ownership
	// mismatch; the two causes are never distinguished to the caller.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a failed authorization predicate, with no detail
	// about which rule failed.
	ErrForbidden = errors.New("access denied")
	// ErrConflict marks a uniqueness violation; the caller must retry with
	// different input.
	ErrConflict = errors.New("already exists")
)

// IsDuplicateKey checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func IsDuplicateKey(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// IsForeignKey checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func IsForeignKey(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
