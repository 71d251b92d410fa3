package redisconn

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Strategy identifies which connection strategy Resolve picked.
type Strategy string

const (
	StrategyPool     Strategy = "pool"
	StrategySocket   Strategy = "unix_socket"
	StrategyURL      Strategy = "url"
	StrategyHostPort Strategy = "host_port"
)

// Descriptor is the single resolved connection target produced from a Config.
// For StrategyPool it carries the externally supplied client; for every other
// strategy it carries the go-redis options to build one.
type Descriptor struct {
	Strategy Strategy
	Pool     redis.UniversalClient
	Options  *redis.Options

	poolName string
}

// fingerprint identifies a descriptor for connection memoization. Two
// configs resolving to the same target share one client.
func (d Descriptor) fingerprint() string {
	if d.Strategy == StrategyPool {
		return "pool|" + d.poolName
	}
	o := d.Options
	return fmt.Sprintf("%s|%s|%s|%d|%s|%s|%s|%s|%s",
		d.Strategy, o.Network, o.Addr, o.DB, o.Username, o.Password,
		o.DialTimeout, o.ReadTimeout, o.WriteTimeout)
}

var (
	poolsMu sync.RWMutex
	pools   = make(map[string]redis.UniversalClient)
)

// RegisterPool makes an externally built client available under a name, so
// SESSION_REDIS_CONNECTION_POOL can refer to it. The caller keeps ownership:
// the provider never closes registered pools.
func RegisterPool(name string, client redis.UniversalClient) {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	pools[name] = client
}

// UnregisterPool removes a previously registered pool.
func UnregisterPool(name string) {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	delete(pools, name)
}

// Resolve turns a Config into exactly one connection Descriptor.
//
// Priority order: registered pool, unix socket, URL, host/port. The URL may
// additionally come from the environment variable named by URLEnvVar, which
// is read here (not at config-load time) and wins over the configured URL.
// Naming a pool that was never registered fails fast.
func Resolve(cfg Config) (Descriptor, error) {
	if cfg.ConnectionPool != "" {
		poolsMu.RLock()
		pool, ok := pools[cfg.ConnectionPool]
		poolsMu.RUnlock()
		if !ok {
			return Descriptor{}, errors.Join(ErrPoolNotRegistered, errors.New(cfg.ConnectionPool))
		}
		return Descriptor{Strategy: StrategyPool, Pool: pool, poolName: cfg.ConnectionPool}, nil
	}

	if cfg.UnixSocketPath != "" {
		opts := &redis.Options{
			Network:  "unix",
			Addr:     strings.TrimPrefix(cfg.UnixSocketPath, "unix://"),
			DB:       cfg.DB,
			Password: cfg.Password,
		}
		applyTimeouts(opts, cfg)
		return Descriptor{Strategy: StrategySocket, Options: opts}, nil
	}

	if url := effectiveURL(cfg); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			return Descriptor{}, errors.Join(ErrFailedToParseURL, err)
		}
		applyTimeouts(opts, cfg)
		return Descriptor{Strategy: StrategyURL, Options: opts}, nil
	}

	opts := &redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		DB:       cfg.DB,
		Password: cfg.Password,
	}
	applyTimeouts(opts, cfg)
	return Descriptor{Strategy: StrategyHostPort, Options: opts}, nil
}

// effectiveURL returns the connection URL after the environment-variable
// override chain: base config value, then the variable named by URLEnvVar.
func effectiveURL(cfg Config) string {
	if cfg.URLEnvVar != "" {
		if override := os.Getenv(cfg.URLEnvVar); override != "" {
			return override
		}
	}
	return cfg.URL
}

func applyTimeouts(opts *redis.Options, cfg Config) {
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
}
