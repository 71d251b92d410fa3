// Package config loads typed configuration structs from environment
// variables, with optional .env file support.
//
// It wraps github.com/caarlos0/env and github.com/joho/godotenv behind a
// generic Load helper that caches each configuration type for the lifetime
// of the process. The session backend keeps its settings in env-tagged
// structs (see the sessions and sessionpg packages); callers load them once
// at startup:
//
//	var cfg sessions.Config
//	config.MustLoad(&cfg)
//
// Note that connection resolution intentionally happens later than config
// loading: options such as SESSION_REDIS_ENV_URL name another environment
// variable that is consulted at resolve time, so late environment mutation
// before first use is honored even though the struct itself is cached.
//
// Reset clears the cache, which tests use after t.Setenv.
package config
