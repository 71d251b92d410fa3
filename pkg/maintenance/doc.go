// Package maintenance implements batch operations over all sessions in a
// namespace: flush-all on either store, and the two migration directions
// between Redis and the relational session table.
//
// Migrations isolate per-record failures: a session whose payload cannot be
// decoded is logged and counted in Summary.Failed while the rest of the
// batch proceeds. Store connectivity errors, by contrast, abort the batch
// and propagate. Both directions are idempotent — the relational side
// upserts by session key, the Redis side overwrites the namespaced key.
package maintenance
