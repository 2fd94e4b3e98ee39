package scanner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDelimiter is returned when a start or end delimiter
// is the empty string.
var ErrEmptyDelimiter = errors.New("empty delimiter")

// Index returns the lowest index at which needle occurs in
// haystack, or -1 when it does not occur. An empty needle
// never matches.
func Index(haystack, needle string) int {
	if needle == "" || len(needle) > len(haystack) {
		return -1
	}

	return strings.Index(haystack, needle)
}

// Delimiters is an immutable start/end marker pair.
type Delimiters struct {
	start string
	end   string
}

// NewDelimiters validates and returns a delimiter pair. Start
// and end may differ in length and content.
func NewDelimiters(start, end string) (Delimiters, error) {
	const errCtx = "creating delimiters"

	if start == "" {
		return Delimiters{}, fmt.Errorf(
			"%s: start: %w", errCtx, ErrEmptyDelimiter,
		)
	}

	if end == "" {
		return Delimiters{}, fmt.Errorf(
			"%s: end: %w", errCtx, ErrEmptyDelimiter,
		)
	}

	return Delimiters{start: start, end: end}, nil
}

// MustDelimiters is like NewDelimiters but panics on error.
func MustDelimiters(start, end string) Delimiters {
	de, err := NewDelimiters(start, end)
	if err != nil {
		panic(err)
	}

	return de
}

// Start returns the start marker.
func (de Delimiters) Start() string { return de.start }

// End returns the end marker.
func (de Delimiters) End() string { return de.end }

// IsZero reports whether de was never initialized.
func (de Delimiters) IsZero() bool {
	return de.start == "" && de.end == ""
}

// Width returns the combined length of both markers, i.e. the
// number of template bytes a placeholder occupies beyond its
// text.
func (de Delimiters) Width() int {
	return len(de.start) + len(de.end)
}

// Next finds the next placeholder in s. It returns the offset
// of the start marker and the length of the text between the
// markers. ok is false when no start marker occurs. malformed
// is true when a start marker occurs without an end marker
// anywhere after it.
func (de Delimiters) Next(s string) (
	offset, textLen int, ok, malformed bool,
) {
	offset = Index(s, de.start)
	if offset < 0 {
		return 0, 0, false, false
	}

	textLen = Index(s[offset+len(de.start):], de.end)
	if textLen < 0 {
		return offset, 0, false, true
	}

	return offset, textLen, true, false
}
