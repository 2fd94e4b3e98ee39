package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/submerge/config"
	"github.com/byte4ever/submerge/scanner"
	"github.com/byte4ever/submerge/substitution"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "cfg.yaml", `
start_delimiter: "*|"
end_delimiter: "|*"
substitutions:
  key: substitution
  key2: substitution2
`)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	assert.Equal(t, "*|", cfg.StartDelimiter())
	assert.Equal(t, "|*", cfg.EndDelimiter())

	got, ok := cfg.Substitutions().TryGet("key2")
	assert.True(t, ok)
	assert.Equal(t, "substitution2", got)
}

func TestLoad_json_defaults_delimiters(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, t.TempDir(), "cfg.json",
		`{"substitutions": {"name": "John"}}`,
	)

	cfg, err := config.Load(pa)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultStartDelimiter, cfg.Start)
	assert.Equal(t, config.DefaultEndDelimiter, cfg.End)
	assert.Equal(t, substitution.Map{"name": "John"}, cfg.Substitution)
}

func TestLoad_empty_yaml_yields_default(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "cfg.yml", "")

	cfg, err := config.Load(pa)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_unsupported_extension(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "cfg.toml", "")

	_, err := config.Load(pa)
	require.ErrorIs(t, err, config.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "loading config")
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/cfg.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestParse_invalid_json(t *testing.T) {
	t.Parallel()

	_, err := config.Parse(".json", []byte(`{"substitutions": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	cfg, err := config.NewBuilder().
		SetTokenStart("{{").
		SetTokenEnd("}}").
		AddMapping("key", "substitution").
		AddMappings(substitution.Map{"other": "value"}).
		AddFromObject(struct{ Name string }{Name: "John"}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "{{", cfg.Start)
	assert.Equal(t, "}}", cfg.End)
	assert.Equal(t, substitution.Map{
		"key":   "substitution",
		"other": "value",
		"name":  "John",
	}, cfg.Substitution)

	de, err := cfg.Delimiters()
	require.NoError(t, err)
	assert.Equal(t, 4, de.Width())
}

func TestBuilder_rejects_empty_delimiter(t *testing.T) {
	t.Parallel()

	_, err := config.NewBuilder().SetTokenEnd("").Build()
	require.ErrorIs(t, err, scanner.ErrEmptyDelimiter)
}

func TestBuilder_keeps_extraction_error(t *testing.T) {
	t.Parallel()

	_, err := config.NewBuilder().
		AddFromObject("not an object").
		AddMapping("key", "value").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building config")
}
