package matchset

import (
	"errors"
	"iter"

	"github.com/byte4ever/submerge/scanner"
)

// ErrMalformed reports a start delimiter with no end delimiter
// anywhere after it.
var ErrMalformed = errors.New(
	"start delimiter without matching end delimiter",
)

// Set is the view shared by Named and Fixed that replay
// algorithms walk.
type Set interface {
	// Template returns the scanned template.
	Template() string

	// Delimiters returns the markers the template was scanned
	// with.
	Delimiters() scanner.Delimiters

	// Len returns the number of placeholders, excluding the
	// sentinel.
	Len() int

	// Span returns the start offset and text length of entry
	// i. Entry Len() is the sentinel.
	Span(i int) (start, length int)

	// Malformed reports whether the scan found an unclosed
	// placeholder.
	Malformed() bool
}

// Match is a placeholder found by a named scan.
type Match struct {
	// Text is the exact text between the delimiters.
	Text string

	// Start is the offset of the start delimiter.
	Start int
}

// FixedMatch is a placeholder found by a fixed-form scan.
type FixedMatch struct {
	Start  int
	Length int
}

// header holds what both set flavors share.
type header struct {
	template  string
	delims    scanner.Delimiters
	malformed bool
}

// Template returns the scanned template.
func (h *header) Template() string { return h.template }

// Delimiters returns the markers used for the scan.
func (h *header) Delimiters() scanner.Delimiters { return h.delims }

// Malformed reports whether the template had an unclosed
// placeholder.
func (h *header) Malformed() bool { return h.malformed }

// Err returns ErrMalformed for malformed sets and nil
// otherwise.
func (h *header) Err() error {
	if h.malformed {
		return ErrMalformed
	}

	return nil
}

// Named is a match set that keeps placeholder text.
type Named struct {
	header

	matches []Match
}

var _ Set = (*Named)(nil)

// ScanNamed scans template for placeholders bounded by de.
// Text between delimiters is taken literally: a second start
// delimiter inside it is part of the text, not a nested
// placeholder.
func ScanNamed(template string, de scanner.Delimiters) *Named {
	na := &Named{
		header: header{template: template, delims: de},
	}

	startLen := len(de.Start())

	ok := scan(template, de, func(start, length int) {
		text := template[start+startLen : start+startLen+length]
		na.matches = append(na.matches, Match{
			Text:  text,
			Start: start,
		})
	})
	if !ok {
		na.malformed = true
		na.matches = nil

		return na
	}

	na.matches = append(na.matches, Match{Start: len(template)})

	return na
}

// Len returns the number of placeholders.
func (n *Named) Len() int {
	if n.malformed {
		return 0
	}

	return max(len(n.matches)-1, 0)
}

// At returns entry i. At(Len()) is the sentinel.
func (n *Named) At(i int) Match { return n.matches[i] }

// Span returns the start and text length of entry i.
func (n *Named) Span(i int) (int, int) {
	m := n.matches[i]

	return m.Start, len(m.Text)
}

// All yields every placeholder in scan order, without the
// sentinel.
func (n *Named) All() iter.Seq2[int, Match] {
	return func(yield func(int, Match) bool) {
		for i := range n.Len() {
			if !yield(i, n.matches[i]) {
				return
			}
		}
	}
}

// Placeholders returns the placeholder texts in scan order.
// Repeated placeholders appear once per occurrence.
func (n *Named) Placeholders() []string {
	out := make([]string, 0, n.Len())
	for _, m := range n.All() {
		out = append(out, m.Text)
	}

	return out
}

// Fixed converts n to its fixed form over the same template.
func (n *Named) Fixed() *Fixed {
	fi := &Fixed{header: n.header}
	if n.malformed {
		return fi
	}

	fi.matches = make([]FixedMatch, len(n.matches))
	for i, m := range n.matches {
		fi.matches[i] = FixedMatch{Start: m.Start, Length: len(m.Text)}
	}

	return fi
}

// Fixed is a match set that keeps positions only.
type Fixed struct {
	header

	matches []FixedMatch
}

var _ Set = (*Fixed)(nil)

// ScanFixed scans template like ScanNamed but records only
// start offsets and text lengths.
func ScanFixed(template string, de scanner.Delimiters) *Fixed {
	fi := &Fixed{
		header: header{template: template, delims: de},
	}

	ok := scan(template, de, func(start, length int) {
		fi.matches = append(fi.matches, FixedMatch{
			Start:  start,
			Length: length,
		})
	})
	if !ok {
		fi.malformed = true
		fi.matches = nil

		return fi
	}

	fi.matches = append(fi.matches, FixedMatch{Start: len(template)})

	return fi
}

// Len returns the number of placeholders.
func (f *Fixed) Len() int {
	if f.malformed {
		return 0
	}

	return max(len(f.matches)-1, 0)
}

// At returns entry i. At(Len()) is the sentinel.
func (f *Fixed) At(i int) FixedMatch { return f.matches[i] }

// Span returns the start and text length of entry i.
func (f *Fixed) Span(i int) (int, int) {
	m := f.matches[i]

	return m.Start, m.Length
}

// scan walks template once, calling record for each
// placeholder. It returns false when the template is
// malformed.
func scan(
	template string,
	de scanner.Delimiters,
	record func(start, length int),
) bool {
	width := de.Width()
	cursor := 0

	for cursor < len(template) {
		offset, length, ok, malformed := de.Next(template[cursor:])
		if malformed {
			return false
		}

		if !ok {
			break
		}

		start := cursor + offset
		record(start, length)

		cursor = start + width + length
	}

	return true
}
