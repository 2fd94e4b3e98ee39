package engine

import (
	"errors"
	"fmt"

	"github.com/byte4ever/submerge/buffer"
	"github.com/byte4ever/submerge/config"
	"github.com/byte4ever/submerge/matchset"
	"github.com/byte4ever/submerge/substitution"
)

// Replace substitutes template against the engine's configured
// substitution source in a single pass.
func (en *Engine) Replace(template string) (string, error) {
	return en.ReplaceWith(template, en.subs)
}

// ReplaceWith substitutes template against src in a single
// pass. It returns "" for an unclosed placeholder.
func (en *Engine) ReplaceWith(
	template string,
	src substitution.Lookup,
) (string, error) {
	if template == "" {
		return "", nil
	}

	var malformed bool

	text, passed, err := en.run(
		template,
		buffer.EstimateSize(len(template), 0, 0),
		func(buf *buffer.Buffer) (int, error) {
			passed, bad, err := streamNamed(
				buf, template, en.delims, src,
			)
			malformed = bad

			return passed, err
		},
	)

	switch {
	case err != nil:
		en.metrics.record(modeOneShot, outcomeError, passed, 0)

		return "", err
	case malformed:
		en.logMalformed(template)
		en.metrics.record(modeOneShot, outcomeMalformed, 0, 0)

		return "", nil
	}

	en.metrics.record(modeOneShot, outcomeOK, passed, len(text))

	return text, nil
}

// ReplaceMatches replays a named match set against src.
func (en *Engine) ReplaceMatches(
	set *matchset.Named,
	src substitution.Lookup,
) (string, error) {
	if set.Malformed() {
		en.metrics.record(modeNamed, outcomeMalformed, 0, 0)

		return "", nil
	}

	text, passed, err := en.run(
		set.Template(),
		en.sizeFor(set),
		func(buf *buffer.Buffer) (int, error) {
			return replay(buf, set, namedResolver(set, src))
		},
	)
	if err != nil {
		en.metrics.record(modeNamed, outcomeError, passed, 0)

		return "", err
	}

	en.metrics.record(modeNamed, outcomeOK, passed, len(text))

	return text, nil
}

// ReplaceFixed replays a fixed-form match set, taking the i-th
// value for the i-th placeholder. Supplying fewer values than
// placeholders fails with substitution.ErrNotEnoughValues.
func (en *Engine) ReplaceFixed(
	set *matchset.Fixed,
	vals substitution.Values,
) (string, error) {
	const errCtx = "replacing fixed matches"

	if set.Malformed() {
		en.metrics.record(modeFixed, outcomeMalformed, 0, 0)

		return "", nil
	}

	if len(vals) < set.Len() {
		en.metrics.record(modeFixed, outcomeError, 0, 0)

		return "", fmt.Errorf(
			"%s: %d placeholders, %d values: %w",
			errCtx, set.Len(), len(vals),
			substitution.ErrNotEnoughValues,
		)
	}

	text, _, err := en.run(
		set.Template(),
		en.sizeFor(set),
		func(buf *buffer.Buffer) (int, error) {
			return replay(buf, set, fixedResolver(vals))
		},
	)
	if err != nil {
		en.metrics.record(modeFixed, outcomeError, 0, 0)

		return "", err
	}

	en.metrics.record(modeFixed, outcomeOK, 0, len(text))

	return text, nil
}

// Replace substitutes template against src using the given
// delimiters. It builds a throwaway Engine per call; hot loops
// should create an Engine once instead.
func Replace(
	template string,
	start string,
	end string,
	src substitution.Lookup,
) (string, error) {
	const errCtx = "replacing"

	en, err := New(&config.Config{Start: start, End: end})
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return en.ReplaceWith(template, src)
}

func (en *Engine) sizeFor(set matchset.Set) int {
	return buffer.EstimateSize(
		len(set.Template()), set.Len(), en.holeSize,
	)
}

// run acquires a buffer, lets fill write into it and returns
// the finished text. The buffer is released on every path.
// Buffer failures and panics come back as *ParseError; other
// errors from fill are returned as is.
func (en *Engine) run(
	template string,
	sizeHint int,
	fill func(buf *buffer.Buffer) (int, error),
) (text string, passed int, err error) {
	buf := en.pool.Acquire(sizeHint)
	defer buf.Release()

	defer func() {
		if rec := recover(); rec != nil {
			cause, ok := rec.(error)
			if !ok {
				cause = panicError{value: rec}
			}

			en.logger.Error(
				"recovered from replacement failure",
				"error", cause,
			)

			text = ""
			err = &ParseError{Input: template, Err: cause}
		}
	}()

	passed, err = fill(buf)
	if err != nil {
		if errors.Is(err, buffer.ErrTooLarge) ||
			errors.Is(err, buffer.ErrReleased) {
			return "", passed, &ParseError{Input: template, Err: err}
		}

		return "", passed, err
	}

	text, err = buf.Finish()
	if err != nil {
		return "", passed, &ParseError{Input: template, Err: err}
	}

	return text, passed, nil
}
