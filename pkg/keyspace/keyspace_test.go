package keyspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/redisessions/pkg/keyspace"
)

func TestNamespace_Add(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{
			name:     "with prefix",
			prefix:   "sessions",
			key:      "foo",
			expected: "sessions:foo",
		},
		{
			name:     "empty prefix is identity",
			prefix:   "",
			key:      "foo",
			expected: "foo",
		},
		{
			name:     "prefix containing separator",
			prefix:   "app:sessions",
			key:      "foo",
			expected: "app:sessions:foo",
		},
		{
			name:     "empty key",
			prefix:   "sessions",
			key:      "",
			expected: "sessions:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := keyspace.New(tt.prefix)
			assert.Equal(t, tt.expected, ns.Add(tt.key))
		})
	}
}

func TestNamespace_RoundTrip(t *testing.T) {
	prefixes := []string{"", "sessions", "mock", "app:sessions", "тест"}
	keys := []string{"foo", "", "a:b:c", "sessions:foo", "日本語"}

	for _, prefix := range prefixes {
		ns := keyspace.New(prefix)
		for _, key := range keys {
			assert.Equal(t, key, ns.Remove(ns.Add(key)),
				"prefix=%q key=%q", prefix, key)
		}
	}
}

func TestNamespace_RemoveForeignKey(t *testing.T) {
	ns := keyspace.New("sessions")

	// Keys without the prefix pass through untouched.
	assert.Equal(t, "other:foo", ns.Remove("other:foo"))
	assert.Equal(t, "foo", ns.Remove("foo"))
}

func TestNamespace_Pattern(t *testing.T) {
	assert.Equal(t, "sessions:*", keyspace.New("sessions").Pattern())
	assert.Equal(t, "*", keyspace.New("").Pattern())
}
