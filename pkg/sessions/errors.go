package sessions

import "errors"

var (
	// ErrSessionExists is returned by Create when the session key is already
	// present in the store. Expected under concurrent creation; callers
	// decide whether to retry with a fresh key.
	ErrSessionExists = errors.New("session key already exists")

	// ErrKeyGeneration is returned when a unique session key could not be
	// generated within the retry bound. With 128-bit random keys this
	// indicates a broken store, not bad luck.
	ErrKeyGeneration = errors.New("failed to generate a unique session key")
)
