package sessions

import "maps"

// Mapping access over the in-memory session data. Mutators mark the session
// modified; readers mark it accessed. None of these touch Redis.

// Get retrieves a value from the session data.
func (s *Store) Get(key string) (any, bool) {
	s.accessed = true
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value in the session data.
func (s *Store) Set(key string, value any) {
	s.data[key] = value
	s.modified = true
}

// SetDefault returns the existing value for key, storing and returning the
// given default when the key is absent.
func (s *Store) SetDefault(key string, value any) any {
	s.accessed = true
	if existing, ok := s.data[key]; ok {
		return existing
	}
	s.data[key] = value
	s.modified = true
	return value
}

// DeleteKey removes a single value from the session data.
func (s *Store) DeleteKey(key string) {
	delete(s.data, key)
	s.modified = true
}

// Keys returns the keys of the session data.
func (s *Store) Keys() []string {
	s.accessed = true
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// Values returns the values of the session data.
func (s *Store) Values() []any {
	s.accessed = true
	values := make([]any, 0, len(s.data))
	for _, v := range s.data {
		values = append(values, v)
	}
	return values
}

// Items returns a copy of the session data; mutating it does not affect the
// session.
func (s *Store) Items() map[string]any {
	s.accessed = true
	items := make(map[string]any, len(s.data))
	maps.Copy(items, s.data)
	return items
}

// Clear empties the session data without touching Redis.
func (s *Store) Clear() {
	s.data = make(map[string]any)
	s.modified = true
	s.accessed = true
}

// Len returns the number of entries in the session data.
func (s *Store) Len() int {
	return len(s.data)
}
