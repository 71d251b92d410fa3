package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/redisessions/pkg/serializer"
)

func variants(t *testing.T) map[string]serializer.Serializer {
	t.Helper()
	return map[string]serializer.Serializer{
		"json":  serializer.JSON{},
		"sonic": serializer.Sonic{},
	}
}

func TestSerializer_RoundTrip(t *testing.T) {
	data := map[string]any{
		"foo":   "bar",
		"count": float64(42),
		"flag":  true,
	}

	for name, s := range variants(t) {
		t.Run(name, func(t *testing.T) {
			payload, err := s.Dumps(data)
			require.NoError(t, err)

			decoded, err := s.Loads(payload)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestSerializer_RoundTripNonASCII(t *testing.T) {
	data := map[string]any{
		"cyrillic": "тест",
		"japanese": "日本語のテキスト",
		"emoji":    "🔑💾",
		"mixed":    "ascii and ünïcödé",
	}

	for name, s := range variants(t) {
		t.Run(name, func(t *testing.T) {
			payload, err := s.Dumps(data)
			require.NoError(t, err)

			decoded, err := s.Loads(payload)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestSerializer_CrossVariantCompat(t *testing.T) {
	data := map[string]any{"nonascii": "тест"}

	payload, err := serializer.JSON{}.Dumps(data)
	require.NoError(t, err)

	decoded, err := serializer.Sonic{}.Loads(payload)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestSerializer_LoadsMalformed(t *testing.T) {
	malformed := [][]byte{
		[]byte("not json at all"),
		[]byte("{\"truncated\":"),
		[]byte("\x80\x01\x02"),
		[]byte("[1,2,3]"), // valid JSON, wrong shape
		[]byte("null"),    // valid JSON, decodes to a nil map
		nil,
	}

	for name, s := range variants(t) {
		t.Run(name, func(t *testing.T) {
			for _, payload := range malformed {
				_, err := s.Loads(payload)
				assert.ErrorIs(t, err, serializer.ErrDecode, "payload %q", payload)
			}
		})
	}
}

func TestSerializer_LoadsNullPayload(t *testing.T) {
	// "null" is valid JSON but not a mapping; returning a nil map with no
	// error would leak an unusable session mapping to callers.
	for name, s := range variants(t) {
		t.Run(name, func(t *testing.T) {
			data, err := s.Loads([]byte("null"))
			assert.ErrorIs(t, err, serializer.ErrDecode)
			assert.Nil(t, data)
		})
	}
}

func TestSerializer_EmptyMapping(t *testing.T) {
	for name, s := range variants(t) {
		t.Run(name, func(t *testing.T) {
			payload, err := s.Dumps(map[string]any{})
			require.NoError(t, err)

			decoded, err := s.Loads(payload)
			require.NoError(t, err)
			assert.Empty(t, decoded)
			assert.NotNil(t, decoded)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected serializer.Serializer
	}{
		{name: "default", arg: "", expected: serializer.JSON{}},
		{name: "json", arg: "json", expected: serializer.JSON{}},
		{name: "sonic", arg: "sonic", expected: serializer.Sonic{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := serializer.New(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := serializer.New("msgpack")
		assert.ErrorIs(t, err, serializer.ErrUnknownSerializer)
	})
}
