// Package redisconn resolves session-storage configuration into a single
// Redis connection target and hands out memoized go-redis clients for it.
//
// Resolution follows a strict priority order so a Config always yields
// exactly one strategy:
//
//  1. SESSION_REDIS_CONNECTION_POOL — a client registered in-process via
//     RegisterPool; naming an unregistered pool is a configuration error.
//  2. SESSION_REDIS_UNIX_DOMAIN_SOCKET_PATH — unix domain socket.
//  3. SESSION_REDIS_URL — connection URL, optionally overridden by the
//     environment variable named in SESSION_REDIS_ENV_URL. The override is
//     read when Resolve runs, not when the config struct is loaded.
//  4. SESSION_REDIS_HOST / PORT / DB / PASSWORD.
//
// Client memoizes one client per distinct resolved target for the lifetime
// of the process. The cache is safe for concurrent use; Reset exists so
// tests can tear it down explicitly.
//
// # Usage
//
//	var cfg redisconn.Config
//	config.MustLoad(&cfg)
//
//	desc, err := redisconn.Resolve(cfg)
//	if err != nil {
//	    // configuration error, do not retry
//	}
//	rdb := redisconn.Client(desc)
package redisconn
