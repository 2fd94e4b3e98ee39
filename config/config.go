package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/submerge/scanner"
	"github.com/byte4ever/submerge/substitution"
)

const (
	// DefaultStartDelimiter is used when none is configured.
	DefaultStartDelimiter = "{"

	// DefaultEndDelimiter is used when none is configured.
	DefaultEndDelimiter = "}"
)

// ErrUnsupportedFormat is returned by Load for files that are
// neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Provider exposes what the engine needs from configuration.
type Provider interface {
	StartDelimiter() string
	EndDelimiter() string
	Substitutions() substitution.Lookup
}

// Config is the file and builder representation of a Provider.
type Config struct {
	Start        string           `json:"start_delimiter" yaml:"start_delimiter"`
	End          string           `json:"end_delimiter"   yaml:"end_delimiter"`
	Substitution substitution.Map `json:"substitutions"   yaml:"substitutions"`
}

var _ Provider = (*Config)(nil)

// Default returns a Config with brace delimiters and an empty
// map.
func Default() *Config {
	return &Config{
		Start:        DefaultStartDelimiter,
		End:          DefaultEndDelimiter,
		Substitution: substitution.Map{},
	}
}

// StartDelimiter implements Provider.
func (c *Config) StartDelimiter() string { return c.Start }

// EndDelimiter implements Provider.
func (c *Config) EndDelimiter() string { return c.End }

// Substitutions implements Provider.
func (c *Config) Substitutions() substitution.Lookup {
	return c.Substitution
}

// Delimiters validates and returns the configured pair.
func (c *Config) Delimiters() (scanner.Delimiters, error) {
	const errCtx = "reading delimiters"

	de, err := scanner.NewDelimiters(c.Start, c.End)
	if err != nil {
		return scanner.Delimiters{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return de, nil
}

// Load reads a Config from a .yaml, .yml or .json file. Missing
// delimiters fall back to the defaults.
func Load(path string) (*Config, error) {
	const errCtx = "loading config"

	content, err := os.ReadFile(path) //nolint:gosec // path is caller-provided
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg, err := Parse(filepath.Ext(path), content)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return cfg, nil
}

// Parse decodes content according to ext (".yaml", ".yml" or
// ".json").
func Parse(ext string, content []byte) (*Config, error) {
	const errCtx = "parsing config"

	cfg := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	case ".json":
		if err := json.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	default:
		return nil, fmt.Errorf(
			"%s: %q: %w", errCtx, ext, ErrUnsupportedFormat,
		)
	}

	if cfg.Start == "" {
		cfg.Start = DefaultStartDelimiter
	}

	if cfg.End == "" {
		cfg.End = DefaultEndDelimiter
	}

	if cfg.Substitution == nil {
		cfg.Substitution = substitution.Map{}
	}

	return cfg, nil
}
