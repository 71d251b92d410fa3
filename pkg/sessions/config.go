package sessions

import (
	"time"

	"github.com/dmitrymomot/redisessions/pkg/keyspace"
	"github.com/dmitrymomot/redisessions/pkg/redisconn"
)

// DefaultExpire is the session TTL used when SESSION_REDIS_EXPIRE is unset:
// two weeks, matching the common web-framework default.
const DefaultExpire = 14 * 24 * time.Hour

// Config holds session engine configuration.
type Config struct {
	// Redis describes the connection target; see redisconn.Config for the
	// resolution priority between pool, socket, URL and host/port.
	Redis redisconn.Config

	// Prefix namespaces every session key in Redis. Empty disables
	// namespacing.
	Prefix string `env:"SESSION_REDIS_PREFIX"`

	// Expire is the default TTL applied on save. Zero falls back to
	// DefaultExpire.
	Expire time.Duration `env:"SESSION_REDIS_EXPIRE" envDefault:"336h"`

	// Serializer selects the payload encoding: "json" (default) or "sonic".
	Serializer string `env:"SESSION_SERIALIZER" envDefault:"json"`
}

// Namespace returns the key namespace derived from the configured prefix.
func (c Config) Namespace() keyspace.Namespace {
	return keyspace.New(c.Prefix)
}

func (c Config) expire() time.Duration {
	if c.Expire <= 0 {
		return DefaultExpire
	}
	return c.Expire
}
