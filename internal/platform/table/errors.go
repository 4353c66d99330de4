package table

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

// PostgreSQL SQLSTATE codes translated into domain errors.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// Translate wraps a store error, mapping constraint violations onto the
// shared sentinels.
func Translate(table, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return fmt.Errorf("table %s: %s: %w (%s)", table, op, shared.ErrReferenced, pgErr.ConstraintName)
		case codeUniqueViolation:
			return fmt.Errorf("table %s: %s: %w (%s)", table, op, shared.ErrDuplicate, pgErr.ConstraintName)
		case codeNotNullViolation, codeCheckViolation:
			return fmt.Errorf("table %s: %s: %w: %s", table, op, shared.ErrValidation, pgErr.Message)
		}
	}
	return fmt.Errorf("table %s: %s: %w", table, op, err)
}
