// Package storeerrors maps PostgreSQL driver errors to the domain error
// taxonomy. Repositories call Map so handlers never special-case storage
// internals: unique violations become conflicts, FK violations become
// not-found, and lock/timeout failures become retryable transient errors.
package storeerrors

import (
	"context"
	"errors"

	"forwarding/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
	codeLockNotAvailable    = "55P03"
	codeQueryCanceled       = "57014"
)

// Map translates a storage error into the domain taxonomy. The paramName
// names the entity being written so the mapped error stays meaningful to the
// caller. Errors that are not recognized pass through unchanged.
func Map(err error, paramName string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewTransientStoreError(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return errs.NewConflictErrorWithCause(paramName, err)
	case codeForeignKeyViolation:
		return errs.NewObjectNotFoundErrorWithCause(paramName, pgErr.ConstraintName, err)
	case codeSerializationFail, codeDeadlockDetected, codeLockNotAvailable, codeQueryCanceled:
		return errs.NewTransientStoreError(err)
	default:
		return err
	}
}
