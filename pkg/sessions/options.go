package sessions

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/redisessions/pkg/keyspace"
	"github.com/dmitrymomot/redisessions/pkg/serializer"
)

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithSessionKey restores a session under a known key, e.g. one recovered
// from a cookie or a migration record.
func WithSessionKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClient bypasses connection resolution and uses the given client.
func WithClient(client redis.UniversalClient) Option {
	return func(s *Store) {
		s.client = client
	}
}

// WithSerializer overrides the configured serializer.
func WithSerializer(codec serializer.Serializer) Option {
	return func(s *Store) {
		s.codec = codec
	}
}

// WithNamespace overrides the configured key namespace.
func WithNamespace(ns keyspace.Namespace) Option {
	return func(s *Store) {
		s.ns = ns
	}
}

// WithLogger sets the logger used for decode-recovery reporting.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}
