package keyspace

import "strings"

// Separator joins the namespace prefix and the session key inside Redis.
const Separator = ":"

// Namespace maps bare session keys to their storage keys and back.
// The zero value (empty prefix) is the identity mapping.
type Namespace struct {
	prefix string
}

// New creates a Namespace with the given prefix. An empty prefix disables
// namespacing entirely.
func New(prefix string) Namespace {
	return Namespace{prefix: prefix}
}

// Prefix returns the configured prefix.
func (n Namespace) Prefix() string {
	return n.prefix
}

// Add converts a bare session key into its namespaced storage key.
func (n Namespace) Add(key string) string {
	if n.prefix == "" {
		return key
	}
	return n.prefix + Separator + key
}

// Remove strips the namespace from a storage key. Keys that do not carry
// the expected prefix are returned unchanged, so Remove(Add(k)) == k holds
// for every key and every prefix, including the empty one.
func (n Namespace) Remove(key string) string {
	if n.prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, n.prefix+Separator)
}

// Pattern returns the SCAN/KEYS glob matching every key in this namespace.
func (n Namespace) Pattern() string {
	if n.prefix == "" {
		return "*"
	}
	return n.prefix + Separator + "*"
}
