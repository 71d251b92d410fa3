package sessionpg

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is one row of the relational session table. SessionData holds the
// serializer payload in base64, so the column stays store-agnostic text
// regardless of which serializer produced it.
type Record struct {
	SessionKey  string
	SessionData string
	ExpireDate  time.Time
}

// Expired reports whether the record's expiry point has passed.
func (r Record) Expired() bool {
	return !r.ExpireDate.After(time.Now())
}

// TTL returns the remaining lifetime of the record, clamped to non-negative.
func (r Record) TTL() time.Duration {
	return max(time.Until(r.ExpireDate), 0)
}

// EncodeData wraps a raw serializer payload for the session_data column.
func EncodeData(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeData unwraps a session_data column back into the raw payload.
func DecodeData(data string) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.Join(ErrInvalidRecordData, err)
	}
	return payload, nil
}

// Repository persists session records in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps a connection pool. The pool stays owned by the caller.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Upsert inserts the record or, when the session key already exists,
// replaces its data and expiry. Re-running a migration therefore never
// duplicates rows.
func (r *Repository) Upsert(ctx context.Context, rec Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (session_key, session_data, expire_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_key) DO UPDATE
		SET session_data = EXCLUDED.session_data,
		    expire_date  = EXCLUDED.expire_date`,
		rec.SessionKey, rec.SessionData, rec.ExpireDate)
	return err
}

// Get fetches a single record by session key.
func (r *Repository) Get(ctx context.Context, key string) (Record, error) {
	var rec Record
	err := r.pool.QueryRow(ctx, `
		SELECT session_key, session_data, expire_date
		FROM sessions WHERE session_key = $1`, key).
		Scan(&rec.SessionKey, &rec.SessionData, &rec.ExpireDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, errors.Join(ErrRecordNotFound, err)
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ForEach streams every record to fn. A non-nil error from fn stops the
// iteration and propagates.
func (r *Repository) ForEach(ctx context.Context, fn func(Record) error) error {
	rows, err := r.pool.Query(ctx, `
		SELECT session_key, session_data, expire_date FROM sessions`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.SessionKey, &rec.SessionData, &rec.ExpireDate); err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// DeleteAll removes every session record and returns the number deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired prunes records whose expiry point has passed. Redis expires
// entries on its own; the relational side needs explicit housekeeping.
func (r *Repository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expire_date <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of stored session records.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM sessions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
