package model

import "strings"

// Style is an insertion-ordered set of string key/value pairs following the
// drawio style grammar. Iteration and serialization preserve the order in
// which keys were first set; overwriting a key keeps its original position.
//
// The zero value is not usable; create instances with [NewStyle] or
// [ParseStyleString].
type Style struct {
	keys   []string
	values map[string]string
}

// NewStyle returns an empty style.
func NewStyle() *Style {
	return &Style{values: make(map[string]string)}
}

// ParseStyleString parses the drawio style grammar: tokens separated by
// semicolons, each either "key=value" or a bare key, which is read as
// key=1. Empty tokens are skipped, so trailing semicolons are harmless.
// Later occurrences of a key overwrite earlier ones.
func ParseStyleString(s string) *Style {
	st := NewStyle()
	for _, token := range strings.Split(s, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key, value, found := strings.Cut(token, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !found {
			st.Set(key, "1")
			continue
		}
		st.Set(key, strings.TrimSpace(value))
	}
	return st
}

// Set stores a key/value pair, appending new keys and overwriting existing
// ones in place.
func (s *Style) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether the key is present.
func (s *Style) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Style) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (s *Style) Delete(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored keys.
func (s *Style) Len() int {
	return len(s.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (s *Style) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Clone returns an independent copy preserving insertion order.
func (s *Style) Clone() *Style {
	c := &Style{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]string, len(s.values)),
	}
	copy(c.keys, s.keys)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// String serializes the style as "key=value" tokens joined by semicolons in
// insertion order. Values stored via bare tokens serialize as key=1, so a
// parse/serialize round trip is canonical rather than byte-preserving.
func (s *Style) String() string {
	if len(s.keys) == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range s.keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.values[k])
	}
	return b.String()
}
