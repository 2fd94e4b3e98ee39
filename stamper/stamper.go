package stamper

import (
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/byte4ever/submerge/config"
	"github.com/byte4ever/submerge/engine"
	"github.com/byte4ever/submerge/substitution"
)

const (
	stampStart = "{"
	stampEnd   = "}"
)

// LoadStamps reads workspace status files and merges them
// into a single map. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// silently skipped; later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (substitution.Map, error) {
	const errCtx = "loading stamps"

	stamps := substitution.Map{}

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		stamps = ParseStamps(stamps, string(content))
	}

	return stamps, nil
}

// ParseStamps adds the "KEY VALUE" lines of content to
// stamps and returns it. A nil stamps gets a new map.
func ParseStamps(
	stamps substitution.Map,
	content string,
) substitution.Map {
	if stamps == nil {
		stamps = substitution.Map{}
	}

	for _, line := range strings.Split(content, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if ok {
			stamps.Set(key, val)
		}
	}

	return stamps
}

// Stamper substitutes {VAR} placeholders from a fixed set of
// stamps.
type Stamper struct {
	stamps substitution.Map
	en     *engine.Engine
}

// New returns a Stamper over stamps. Additional engine
// options, such as a shared buffer pool, may be passed.
func New(
	stamps substitution.Map,
	opts ...engine.Option,
) (*Stamper, error) {
	const errCtx = "creating stamper"

	en, err := engine.New(&config.Config{
		Start:        stampStart,
		End:          stampEnd,
		Substitution: stamps,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Stamper{stamps: stamps, en: en}, nil
}

// Stamps returns the loaded stamp map.
func (s *Stamper) Stamps() substitution.Map {
	return s.stamps
}

// Stamp substitutes format. Unknown variables are preserved
// as-is; an unclosed "{" yields the empty string.
func (s *Stamper) Stamp(format string) (string, error) {
	const errCtx = "stamping"

	out, err := s.en.Replace(format)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// StampStrict is Stamp but fails with matchset.ErrMalformed
// when format has an unclosed "{".
func (s *Stamper) StampStrict(format string) (string, error) {
	const errCtx = "stamping"

	set := s.en.Scan(format)
	if err := set.Err(); err != nil {
		return "", fmt.Errorf("%s: %q: %w", errCtx, format, err)
	}

	out, err := s.en.ReplaceMatches(set, s.stamps)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// StampEach substitutes format once per row. Row values take
// precedence over stamps. format is scanned once; results are
// produced as the sequence is consumed.
func (s *Stamper) StampEach(
	format string,
	rows []substitution.Map,
) iter.Seq2[string, error] {
	srcs := make([]substitution.Lookup, len(rows))
	for i, row := range rows {
		srcs[i] = substitution.Chain{row, s.stamps}
	}

	return s.en.ReplaceMany(format, srcs)
}

// Stamp loads workspace status variables from infoFiles
// and substitutes {VAR} placeholders in format. Unknown
// variables are preserved as-is.
func Stamp(
	infoFiles []string,
	format string,
) (string, error) {
	const errCtx = "stamping"

	stamps, err := LoadStamps(infoFiles)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	st, err := New(stamps)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return st.Stamp(format)
}
