package substitution

import (
	"maps"
	"slices"
)

// Lookup resolves placeholder text to its replacement.
type Lookup interface {
	// TryGet returns the replacement for key and whether one
	// exists. Keys compare by content and case.
	TryGet(key string) (string, bool)
}

// Map is a name-keyed substitution source.
type Map map[string]string

var _ Lookup = Map(nil)

// TryGet implements Lookup.
func (m Map) TryGet(key string) (string, bool) {
	val, ok := m[key]

	return val, ok
}

// Set adds key or updates its replacement, returning m for
// chaining. m must be non-nil.
func (m Map) Set(key, val string) Map {
	m[key] = val

	return m
}

// Merge copies every entry of other into m, overwriting
// existing keys.
func (m Map) Merge(other Map) Map {
	maps.Copy(m, other)

	return m
}

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(key string) (string, bool)

// TryGet implements Lookup.
func (f LookupFunc) TryGet(key string) (string, bool) {
	return f(key)
}

// Chain resolves against each source in turn and returns the
// first hit.
type Chain []Lookup

// TryGet implements Lookup.
func (c Chain) TryGet(key string) (string, bool) {
	for _, src := range c {
		if val, ok := src.TryGet(key); ok {
			return val, true
		}
	}

	return "", false
}
