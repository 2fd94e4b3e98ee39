package substitution

import (
	"errors"
	"fmt"
)

// ErrNotEnoughValues is returned when positional replay runs
// out of values before it runs out of placeholders.
var ErrNotEnoughValues = errors.New(
	"fewer replacement values than placeholders",
)

// Values is an ordered substitution source: value i replaces
// the i-th placeholder in scan order.
type Values []string

// NewValues returns Values holding vals in order.
func NewValues(vals ...string) Values {
	return Values(vals)
}

// Append adds val at the end, returning the extended Values.
func (v Values) Append(val string) Values {
	return append(v, val)
}

// Get returns value i, or ErrNotEnoughValues when i is out of
// range.
func (v Values) Get(i int) (string, error) {
	if i < 0 || i >= len(v) {
		return "", fmt.Errorf(
			"value %d of %d: %w", i, len(v), ErrNotEnoughValues,
		)
	}

	return v[i], nil
}
