package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// integrityClass is the SQLSTATE class for integrity constraint violations.
const integrityClass = "23"

// classify wraps err with the catalog error kind it belongs to. Errors that
// already carry a kind are only annotated with op.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, types.ErrNotFound)
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidArgument),
		errors.Is(err, types.ErrConstraintViolation),
		errors.Is(err, types.ErrStoreFault),
		errors.Is(err, types.ErrNoChanges):
		return fmt.Errorf("%s: %w", op, err)
	case isConstraintViolation(err):
		return fmt.Errorf("%s: %w: %w", op, types.ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, types.ErrStoreFault, err)
	}
}

// isConstraintViolation recognises unique, not-null and foreign key
// violations reported by any of the supported drivers.
func isConstraintViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, integrityClass)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == integrityClass
	}
	return false
}
