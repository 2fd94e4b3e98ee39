// Package substitution holds the sources placeholders are resolved
// against: Map for name-keyed lookup and Values for positional
// replay. FromObject builds a Map from an arbitrary value's exported
// fields.
package substitution
