package engine

import (
	"fmt"
)

// ParseError reports an unexpected failure while scanning or
// replacing a template.
type ParseError struct {
	// Input is the offending template.
	Input string

	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"cannot parse the string '%s': %v", e.Input, e.Err,
	)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// panicError carries a recovered panic value that is not an
// error.
type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}
