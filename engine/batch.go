package engine

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/submerge/matchset"
	"github.com/byte4ever/submerge/substitution"
)

// ReplaceMany scans template once and replays it against each
// source in order. Results are computed as the sequence is
// consumed; stopping early skips the remaining sources. No
// scan happens when srcs is empty.
func (en *Engine) ReplaceMany(
	template string,
	srcs []substitution.Lookup,
) iter.Seq2[string, error] {
	return en.ReplaceSeq(template, slices.Values(srcs))
}

// ReplaceSeq is ReplaceMany over an arbitrary sequence of
// sources. The template is scanned when the first source is
// pulled.
func (en *Engine) ReplaceSeq(
	template string,
	srcs iter.Seq[substitution.Lookup],
) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var set *matchset.Named

		for src := range srcs {
			if set == nil {
				set = en.Scan(template)
			}

			if !yield(en.ReplaceMatches(set, src)) {
				return
			}
		}
	}
}

// ReplaceParallel scans template once and replays it against
// every source using up to workers goroutines (unlimited when
// workers <= 0). Results keep the order of srcs. The first
// failure cancels the remaining work.
func (en *Engine) ReplaceParallel(
	ctx context.Context,
	template string,
	srcs []substitution.Lookup,
	workers int,
) ([]string, error) {
	const errCtx = "replacing in parallel"

	out := make([]string, len(srcs))
	if len(srcs) == 0 {
		return out, nil
	}

	set := en.Scan(template)

	grp, grpCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		grp.SetLimit(workers)
	}

	for i, src := range srcs {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}

			text, err := en.ReplaceMatches(set, src)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}

			out[i] = text

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}
