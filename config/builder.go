package config

import (
	"fmt"

	"github.com/byte4ever/submerge/substitution"
)

// Builder assembles a Config fluently. The first error is kept
// and returned by Build.
type Builder struct {
	cfg *Config
	err error
}

// NewBuilder starts from Default.
func NewBuilder() *Builder {
	return &Builder{cfg: Default()}
}

// SetTokenStart sets the start delimiter.
func (b *Builder) SetTokenStart(start string) *Builder {
	b.cfg.Start = start

	return b
}

// SetTokenEnd sets the end delimiter.
func (b *Builder) SetTokenEnd(end string) *Builder {
	b.cfg.End = end

	return b
}

// AddMapping adds or updates one substitution.
func (b *Builder) AddMapping(key, val string) *Builder {
	b.cfg.Substitution.Set(key, val)

	return b
}

// AddMappings merges ma into the substitutions.
func (b *Builder) AddMappings(ma substitution.Map) *Builder {
	b.cfg.Substitution.Merge(ma)

	return b
}

// AddFromObject merges the fields of obj as extracted by
// substitution.FromObject.
func (b *Builder) AddFromObject(obj any) *Builder {
	if b.err != nil {
		return b
	}

	ma, err := substitution.FromObject(obj)
	if err != nil {
		b.err = err

		return b
	}

	b.cfg.Substitution.Merge(ma)

	return b
}

// Build validates the delimiters and returns the Config.
func (b *Builder) Build() (*Config, error) {
	const errCtx = "building config"

	if b.err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, b.err)
	}

	if _, err := b.cfg.Delimiters(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return b.cfg, nil
}
