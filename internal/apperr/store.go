package apperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FromStore normalizes a driver error into a *StoreError when its cause is
// recognizable, and returns it unchanged otherwise.
//
// PostgreSQL errors keep their SQLSTATE. The pure-Go SQLite driver reports
// constraint failures as plain text, so those are matched by message.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &StoreError{Code: pgErr.Code, Err: err}
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &StoreError{Code: CodeForeignKeyViolation, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &StoreError{Code: CodeUniqueViolation, Err: err}
	}

	low := strings.ToLower(err.Error())
	switch {
	case strings.Contains(low, "foreign key constraint failed"):
		return &StoreError{Code: CodeForeignKeyViolation, Err: err}
	case strings.Contains(low, "not null constraint failed"):
		return &StoreError{Code: CodeNotNullViolation, Err: err}
	case strings.Contains(low, "unique constraint failed"),
		strings.Contains(low, "constraint failed: unique"):
		return &StoreError{Code: CodeUniqueViolation, Err: err}
	case strings.Contains(low, "datatype mismatch"):
		return &StoreError{Code: CodeInvalidTextRepresentation, Err: err}
	}
	return err
}
