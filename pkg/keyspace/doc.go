// Package keyspace implements the deterministic, reversible mapping between
// bare session keys and the namespaced keys stored in Redis.
//
// A Namespace with prefix "sessions" maps the key "abc" to "sessions:abc";
// with an empty prefix both directions are the identity. The mapping is
// bijective, which bulk operations rely on when they scan the namespace glob
// and recover the original session keys.
package keyspace
