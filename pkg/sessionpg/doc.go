// Package sessionpg stores session records in a PostgreSQL table, serving
// as the relational side of the Redis<->SQL session migration.
//
// The schema is a single table with the migration record contract:
//
//	sessions(session_key TEXT PRIMARY KEY,
//	         session_data TEXT NOT NULL,   -- base64 of the serializer payload
//	         expire_date TIMESTAMPTZ NOT NULL)
//
// managed by goose migrations embedded in the package (see Migrate).
// Repository exposes the row operations the maintenance layer needs:
// key-idempotent Upsert, streaming ForEach, DeleteAll, DeleteExpired.
package sessionpg
