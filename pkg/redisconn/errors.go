package redisconn

import "errors"

var (
	// ErrPoolNotRegistered is returned when SESSION_REDIS_CONNECTION_POOL
	// names a pool that was never passed to RegisterPool.
	ErrPoolNotRegistered = errors.New("named connection pool is not registered")

	// ErrFailedToParseURL is returned for a malformed SESSION_REDIS_URL.
	ErrFailedToParseURL = errors.New("failed to parse redis connection URL")

	// ErrHealthcheckFailed is returned when the ping probe fails.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
