package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daileit/wedding-planner/internal/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// MapError translates constraint violations into domain errors. field names
// the input that a foreign key violation is reported against. Other errors
// are returned unchanged.
func MapError(err error, field string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	case foreignKeyViolation:
		return domain.NewValidationError(field, "references a record that does not exist")
	}

	return err
}
