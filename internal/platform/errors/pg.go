package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode

import (
	"context"
	stderrs "errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common SQLSTATE codes we care about
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"

	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrQueryCanceled        = "57014" // statement_timeout
	pgErrAdminShutdown        = "57P01"
	pgErrCannotConnectNow     = "57P03" // startup in progress
	pgErrTooManyConnections   = "53300"
)

// ExtractPgError returns (*pgconn.PgError, true) if the chain holds a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsCheckViolation reports whether the error is a check constraint violation
func IsCheckViolation(err error) bool { return IsSQLState(err, pgErrCheckViolation) }

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgErrForeignKeyViolation, pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true
	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true
	case pgErrQueryCanceled, pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections,
		pgErrSerializationFailure, pgErrDeadlockDetected:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// IsConnectivity reports whether err means the store could not be reached in time
// covers dial failures, network timeouts, and context deadlines
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if stderrs.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if stderrs.As(err, &netErr) {
		return true
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "closed pool") ||
		strings.Contains(s, "conn closed") ||
		strings.Contains(s, "connection refused")
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromStore is FromPostgres plus connectivity mapping
// unreachable or timed out stores surface as Unavailable so callers can offer a retry
// errors that are already *Error pass through untouched
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	if stderrs.Is(err, context.Canceled) {
		return Wrap(err, ErrorCodeUnavailable, msg+": canceled")
	}
	if _, ok := ExtractPgError(err); !ok && IsConnectivity(err) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	return FromPostgres(err, msg)
}
