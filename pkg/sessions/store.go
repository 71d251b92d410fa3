package sessions

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisessions/pkg/keyspace"
	"github.com/dmitrymomot/redisessions/pkg/redisconn"
	"github.com/dmitrymomot/redisessions/pkg/serializer"
)

// keyGenAttempts bounds retries when generating a unique session key.
// Keys carry 128 bits of randomness, so a single collision is already
// extraordinary; repeated collisions mean the store is misbehaving.
const keyGenAttempts = 5

// Store is a single session backed by Redis: an in-memory mapping plus the
// machinery to load, save, delete and expire it. A Store is not safe for
// concurrent mutation; share the underlying client, not the Store.
type Store struct {
	client redis.UniversalClient
	ns     keyspace.Namespace
	codec  serializer.Serializer
	log    *slog.Logger

	defaultTTL time.Duration

	key      string
	data     map[string]any
	expiry   time.Duration
	expireAt time.Time
	modified bool
	accessed bool
}

// New builds a session Store from configuration. The Redis connection is
// resolved through redisconn unless WithClient supplies one, so repeated
// constructions reuse the process-wide memoized client.
func New(cfg Config, opts ...Option) (*Store, error) {
	codec, err := serializer.New(cfg.Serializer)
	if err != nil {
		return nil, err
	}

	s := &Store{
		ns:         cfg.Namespace(),
		codec:      codec,
		log:        slog.Default(),
		defaultTTL: cfg.expire(),
		data:       make(map[string]any),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		desc, err := redisconn.Resolve(cfg.Redis)
		if err != nil {
			return nil, err
		}
		s.client = redisconn.Client(desc)
	}

	return s, nil
}

// Key returns the session key, empty until the session is first persisted
// or a key is supplied via WithSessionKey.
func (s *Store) Key() string { return s.key }

// Modified reports whether the in-memory mapping changed since the last save.
func (s *Store) Modified() bool { return s.modified }

// Accessed reports whether the session data has been read or loaded.
func (s *Store) Accessed() bool { return s.accessed }

// Exists reports whether the given session key (current one when empty) is
// present in Redis and not expired.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		key = s.key
	}
	if key == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.ns.Add(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Load fetches and decodes the session payload, replacing the in-memory
// mapping. A missing key or an undecodable payload yields a fresh empty
// session: a session whose data cannot be read is treated the same as no
// session at all. That recovery is deliberate and logged at debug level;
// connectivity errors still propagate.
func (s *Store) Load(ctx context.Context) (map[string]any, error) {
	s.accessed = true

	if s.key == "" {
		s.data = make(map[string]any)
		return s.Items(), nil
	}

	payload, err := s.client.Get(ctx, s.ns.Add(s.key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		s.data = make(map[string]any)
		return s.Items(), nil
	case err != nil:
		return nil, err
	}

	data, err := s.codec.Loads(payload)
	if err != nil {
		s.log.DebugContext(ctx, "session payload failed to decode, starting fresh",
			"session_key", s.key, "error", err)
		s.data = make(map[string]any)
		return s.Items(), nil
	}
	if data == nil {
		// Mutators assign into s.data; a nil mapping must never get this far.
		data = make(map[string]any)
	}

	s.data = data
	return s.Items(), nil
}

// Save persists the in-memory mapping under the namespaced key with the
// effective TTL, overwriting any previous payload and refreshing the TTL.
// A session key is generated on first save. Saving a session whose absolute
// expiry point has already passed deletes the entry instead: go-redis treats
// a zero expiration as "no expiry", which would persist the key forever.
func (s *Store) Save(ctx context.Context) error {
	if s.key == "" {
		key, err := s.generateKey(ctx)
		if err != nil {
			return err
		}
		s.key = key
	}

	if s.expired() {
		if err := s.Delete(ctx, ""); err != nil {
			return err
		}
		s.modified = false
		return nil
	}

	payload, err := s.codec.Dumps(s.data)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.ns.Add(s.key), payload, s.ttl()).Err(); err != nil {
		return err
	}

	s.modified = false
	return nil
}

// Create persists the session with create-only semantics: an atomic
// set-if-not-exists. When the key was supplied by the caller and already
// exists, Create fails with ErrSessionExists and writes nothing. When the
// key is engine-generated, a collision triggers regeneration within the
// retry bound.
func (s *Store) Create(ctx context.Context) error {
	generated := false
	if s.key == "" {
		key, err := s.generateKey(ctx)
		if err != nil {
			return err
		}
		s.key = key
		generated = true
	}

	// An already-expired session is never written; the entry it describes
	// would not exist either way. The caller-supplied key is left alone, it
	// may belong to a live session.
	if s.expired() {
		s.modified = false
		return nil
	}

	payload, err := s.codec.Dumps(s.data)
	if err != nil {
		return err
	}

	for range keyGenAttempts {
		ok, err := s.client.SetNX(ctx, s.ns.Add(s.key), payload, s.ttl()).Result()
		if err != nil {
			return err
		}
		if ok {
			s.modified = false
			return nil
		}
		if !generated {
			return ErrSessionExists
		}
		key, err := s.generateKey(ctx)
		if err != nil {
			return err
		}
		s.key = key
	}

	return ErrKeyGeneration
}

// Delete removes the given session key (current one when empty) from Redis.
// Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		key = s.key
	}
	if key == "" {
		return nil
	}
	return s.client.Del(ctx, s.ns.Add(key)).Err()
}

// Flush deletes the current session from Redis and resets the in-memory
// state, including the key, so the next save allocates a fresh session.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.Delete(ctx, ""); err != nil {
		return err
	}
	s.data = make(map[string]any)
	s.key = ""
	s.modified = true
	s.accessed = true
	return nil
}

// CycleKey moves the session data under a newly generated key and deletes
// the old entry. Used after privilege changes to defeat session fixation.
func (s *Store) CycleKey(ctx context.Context) error {
	old := s.key
	s.key = ""
	if err := s.Save(ctx); err != nil {
		s.key = old
		return err
	}
	if old != "" {
		return s.Delete(ctx, old)
	}
	return nil
}

// SetExpiry overrides the TTL used by the next save. Zero or negative
// restores the configured default.
func (s *Store) SetExpiry(d time.Duration) {
	s.expireAt = time.Time{}
	if d <= 0 {
		s.expiry = 0
		return
	}
	s.expiry = d
}

// SetExpiryAt pins the session expiry to an absolute point in time. The TTL
// written on save is the remaining duration, clamped to non-negative.
func (s *Store) SetExpiryAt(t time.Time) {
	s.expiry = 0
	s.expireAt = t
}

// ExpiryAge returns the TTL the next save would apply.
func (s *Store) ExpiryAge() time.Duration {
	return s.ttl()
}

// expired reports whether an absolute expiry point is set and has passed.
// Such a session must never be written: go-redis interprets a zero
// expiration as "keep forever".
func (s *Store) expired() bool {
	return !s.expireAt.IsZero() && !s.expireAt.After(time.Now())
}

func (s *Store) ttl() time.Duration {
	if !s.expireAt.IsZero() {
		return max(time.Until(s.expireAt), 0)
	}
	if s.expiry > 0 {
		return s.expiry
	}
	return s.defaultTTL
}

func (s *Store) generateKey(ctx context.Context) (string, error) {
	for range keyGenAttempts {
		u := uuid.New()
		key := hex.EncodeToString(u[:])

		exists, err := s.Exists(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return key, nil
		}
	}
	return "", ErrKeyGeneration
}
