package serializer

import "errors"

var (
	// ErrUnknownSerializer is returned when SESSION_SERIALIZER names a
	// serializer that is not registered.
	ErrUnknownSerializer = errors.New("unknown serializer")

	// ErrEncode is returned when a session mapping cannot be encoded.
	ErrEncode = errors.New("failed to encode session data")

	// ErrDecode is returned when a payload cannot be decoded back into a
	// session mapping.
	ErrDecode = errors.New("failed to decode session payload")

	errNullPayload = errors.New("payload is not a mapping")
)
