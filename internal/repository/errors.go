package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// DuplicateError reports a unique-constraint conflict as a typed result
// instead of leaving callers to pattern-match driver error shapes.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// asDuplicate converts a unique_violation into a DuplicateError naming the
// conflicting column, derived from the constraint name (<table>_<col>_key).
func asDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}

	field := pgErr.ConstraintName
	if parts := strings.Split(field, "_"); len(parts) >= 3 {
		field = parts[len(parts)-2]
	}
	if field == "" {
		field = "value"
	}
	return &DuplicateError{Field: capitalize(field)}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
