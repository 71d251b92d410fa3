package redisconn

import "time"

// Config describes how to reach the Redis server holding session data.
// Exactly one connection strategy is chosen by Resolve, in priority order:
// a pre-registered connection pool, a unix domain socket, a connection URL,
// then discrete host/port/db/password settings.
type Config struct {
	Host     string `env:"SESSION_REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"SESSION_REDIS_PORT" envDefault:"6379"`
	DB       int    `env:"SESSION_REDIS_DB" envDefault:"0"`
	Password string `env:"SESSION_REDIS_PASSWORD"`

	// URL overrides host/port settings when set. Format:
	// "redis://:password@localhost:6379/0".
	URL string `env:"SESSION_REDIS_URL"`

	// URLEnvVar names another environment variable whose value, when
	// non-empty, overrides URL. It is consulted at resolve time rather than
	// config-load time, so environment mutation before first use is honored.
	// Typical value: "REDIS_URL" on PaaS platforms that inject it.
	URLEnvVar string `env:"SESSION_REDIS_ENV_URL"`

	// UnixSocketPath switches the connection to a unix domain socket.
	// An optional "unix://" scheme prefix is accepted and stripped.
	UnixSocketPath string `env:"SESSION_REDIS_UNIX_DOMAIN_SOCKET_PATH"`

	// ConnectionPool names a client registered via RegisterPool. When set
	// it wins over every other strategy; naming an unregistered pool is a
	// configuration error.
	ConnectionPool string `env:"SESSION_REDIS_CONNECTION_POOL"`

	// Pass-through network timeouts for the go-redis client. The engine
	// never invents timeout logic of its own.
	DialTimeout  time.Duration `env:"SESSION_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"SESSION_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"SESSION_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}
