// Package sessions implements the Redis-backed session persistence engine:
// it maps an abstract session (a unique key plus a string-keyed mapping)
// onto namespaced Redis keys with store-enforced TTL expiry.
//
// A Store holds one session's in-memory mapping together with modified /
// accessed tracking, and talks to Redis only on explicit lifecycle calls:
//
//	var cfg sessions.Config
//	config.MustLoad(&cfg)
//
//	sess, err := sessions.New(cfg)
//	if err != nil {
//	    // configuration error
//	}
//
//	sess.Set("user_id", "42")
//	if err := sess.Save(ctx); err != nil { ... }
//
//	ok, err := sess.Exists(ctx, sess.Key())
//
// Save is an unconditional upsert that refreshes the TTL; Create is the
// atomic set-if-not-exists variant and fails with ErrSessionExists when the
// caller-supplied key is already taken. Load recovers a missing or
// undecodable payload into a fresh empty session; every other backend error
// propagates to the caller untouched — retry policy belongs to the host
// framework, not the engine.
//
// Expiry is enforced by Redis itself. The engine only chooses the TTL
// written on save: the configured default, a per-session duration set via
// SetExpiry, or an absolute point set via SetExpiryAt.
//
// A Store is not safe for concurrent use; the shared resource is the
// underlying go-redis client, which is.
package sessions
