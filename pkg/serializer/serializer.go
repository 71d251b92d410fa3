package serializer

import (
	"encoding/json"
	"errors"

	"github.com/bytedance/sonic"
)

// Serializer encodes a session mapping into a storage-safe payload and back.
// Implementations must round-trip arbitrary Unicode text values losslessly.
type Serializer interface {
	// Dumps encodes the session mapping into a payload suitable for Redis.
	Dumps(data map[string]any) ([]byte, error)

	// Loads decodes a payload back into a session mapping. Malformed or
	// foreign-format payloads fail with ErrDecode, never partial data.
	Loads(payload []byte) (map[string]any, error)
}

// Serializer names accepted by New and the SESSION_SERIALIZER setting.
const (
	NameJSON  = "json"
	NameSonic = "sonic"
)

// New returns the serializer registered under the given configuration name.
// An empty name selects the default JSON serializer.
func New(name string) (Serializer, error) {
	switch name {
	case "", NameJSON:
		return JSON{}, nil
	case NameSonic:
		return Sonic{}, nil
	default:
		return nil, errors.Join(ErrUnknownSerializer, errors.New(name))
	}
}

// JSON is the default serializer, backed by encoding/json.
type JSON struct{}

func (JSON) Dumps(data map[string]any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return payload, nil
}

func (JSON) Loads(payload []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	// A literal "null" unmarshals into a nil map without error; that is not
	// a session mapping.
	if data == nil {
		return nil, errors.Join(ErrDecode, errNullPayload)
	}
	return data, nil
}

// Sonic is a high-throughput JSON serializer backed by bytedance/sonic.
// Wire-compatible with the default JSON serializer, so the two can be
// switched without invalidating stored sessions.
type Sonic struct{}

func (Sonic) Dumps(data map[string]any) ([]byte, error) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return payload, nil
}

func (Sonic) Loads(payload []byte) (map[string]any, error) {
	var data map[string]any
	if err := sonic.Unmarshal(payload, &data); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}
	if data == nil {
		return nil, errors.Join(ErrDecode, errNullPayload)
	}
	return data, nil
}
