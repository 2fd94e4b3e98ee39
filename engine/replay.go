package engine

import (
	"github.com/byte4ever/submerge/buffer"
	"github.com/byte4ever/submerge/matchset"
	"github.com/byte4ever/submerge/scanner"
	"github.com/byte4ever/submerge/substitution"
)

// resolveFunc writes the replacement for placeholder i and
// reports whether it was passed through unchanged.
type resolveFunc func(buf *buffer.Buffer, i int) (bool, error)

// replay walks set once, copying literal spans and letting
// resolve fill each placeholder. The sentinel entry ends the
// walk after the template tail is copied. It returns the
// number of pass-through placeholders.
func replay(
	buf *buffer.Buffer,
	set matchset.Set,
	resolve resolveFunc,
) (int, error) {
	tpl := set.Template()
	width := set.Delimiters().Width()
	last := set.Len()
	prev := 0
	passed := 0

	for i := 0; ; i++ {
		start, length := set.Span(i)

		if start > prev {
			if _, err := buf.WriteString(tpl[prev:start]); err != nil {
				return passed, err
			}
		}

		if i == last {
			return passed, nil
		}

		pass, err := resolve(buf, i)
		if err != nil {
			return passed, err
		}

		if pass {
			passed++
		}

		prev = start + width + length
	}
}

// namedResolver looks placeholder text up in src.
func namedResolver(
	set *matchset.Named,
	src substitution.Lookup,
) resolveFunc {
	de := set.Delimiters()

	return func(buf *buffer.Buffer, i int) (bool, error) {
		return writeNamed(buf, de, set.At(i).Text, src)
	}
}

// fixedResolver takes the i-th value of vals.
func fixedResolver(vals substitution.Values) resolveFunc {
	return func(buf *buffer.Buffer, i int) (bool, error) {
		val, err := vals.Get(i)
		if err != nil {
			return false, err
		}

		if val == "" {
			return false, nil
		}

		_, err = buf.WriteString(val)

		return false, err
	}
}

// writeNamed writes the replacement for text, or the original
// delimited placeholder when src has none.
func writeNamed(
	buf *buffer.Buffer,
	de scanner.Delimiters,
	text string,
	src substitution.Lookup,
) (bool, error) {
	if val, ok := src.TryGet(text); ok {
		if val == "" {
			return false, nil
		}

		_, err := buf.WriteString(val)

		return false, err
	}

	if _, err := buf.WriteString(de.Start()); err != nil {
		return true, err
	}

	if _, err := buf.WriteString(text); err != nil {
		return true, err
	}

	_, err := buf.WriteString(de.End())

	return true, err
}

// streamNamed scans and replaces template in a single pass
// without building a match set. malformed is true when an
// unclosed placeholder was found; buf then holds a partial
// result the caller must discard.
func streamNamed(
	buf *buffer.Buffer,
	template string,
	de scanner.Delimiters,
	src substitution.Lookup,
) (passed int, malformed bool, err error) {
	startLen := len(de.Start())
	width := de.Width()
	prev := 0

	for prev < len(template) {
		offset, length, ok, bad := de.Next(template[prev:])
		if bad {
			return passed, true, nil
		}

		if !ok {
			break
		}

		start := prev + offset

		if offset > 0 {
			if _, err := buf.WriteString(template[prev:start]); err != nil {
				return passed, false, err
			}
		}

		text := template[start+startLen : start+startLen+length]

		pass, err := writeNamed(buf, de, text, src)
		if err != nil {
			return passed, false, err
		}

		if pass {
			passed++
		}

		prev = start + width + length
	}

	if prev < len(template) {
		if _, err := buf.WriteString(template[prev:]); err != nil {
			return passed, false, err
		}
	}

	return passed, false, nil
}
