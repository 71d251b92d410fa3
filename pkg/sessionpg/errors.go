package sessionpg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")

	// ErrRecordNotFound is returned by Get for an unknown session key.
	ErrRecordNotFound = errors.New("session record not found")

	// ErrInvalidRecordData is returned when a stored session_data column is
	// not valid base64 and therefore cannot be transferred.
	ErrInvalidRecordData = errors.New("invalid session record data")
)

// IsNotFound detects pgx.ErrNoRows for consistent "not found" handling.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrRecordNotFound)
}

// IsDuplicateKey detects PostgreSQL unique constraint violations
// (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
