package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/submerge/scanner"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		haystack string
		needle   string
		want     int
	}{
		{name: "at start", haystack: "{key}", needle: "{", want: 0},
		{name: "in middle", haystack: "ab*|c", needle: "*|", want: 2},
		{name: "at end", haystack: "abc|*", needle: "|*", want: 3},
		{name: "first of many", haystack: "a}b}c}", needle: "}", want: 1},
		{name: "absent", haystack: "abc", needle: "{", want: -1},
		{name: "partial at end", haystack: "abc|", needle: "|*", want: -1},
		{name: "needle longer", haystack: "{", needle: "{{", want: -1},
		{name: "empty haystack", haystack: "", needle: "{", want: -1},
		{name: "empty needle", haystack: "abc", needle: "", want: -1},
		{name: "both empty", haystack: "", needle: "", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(
				t, tt.want, scanner.Index(tt.haystack, tt.needle),
			)
		})
	}
}

func TestNewDelimiters_rejects_empty(t *testing.T) {
	t.Parallel()

	_, err := scanner.NewDelimiters("", "}")
	require.ErrorIs(t, err, scanner.ErrEmptyDelimiter)

	_, err = scanner.NewDelimiters("{", "")
	require.ErrorIs(t, err, scanner.ErrEmptyDelimiter)
}

func TestNewDelimiters_asymmetric(t *testing.T) {
	t.Parallel()

	de, err := scanner.NewDelimiters("<%=", "%>")
	require.NoError(t, err)

	assert.Equal(t, "<%=", de.Start())
	assert.Equal(t, "%>", de.End())
	assert.Equal(t, 5, de.Width())
	assert.False(t, de.IsZero())
	assert.True(t, scanner.Delimiters{}.IsZero())
}

func TestMustDelimiters_panics_on_empty(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		scanner.MustDelimiters("{", "")
	})
}

func TestDelimitersNext(t *testing.T) {
	t.Parallel()

	de := scanner.MustDelimiters("*|", "|*")

	offset, textLen, ok, malformed := de.Next("ab *|key|* cd")
	assert.True(t, ok)
	assert.False(t, malformed)
	assert.Equal(t, 3, offset)
	assert.Equal(t, 3, textLen)

	_, _, ok, malformed = de.Next("no markers")
	assert.False(t, ok)
	assert.False(t, malformed)

	offset, _, ok, malformed = de.Next("ab *|key")
	assert.False(t, ok)
	assert.True(t, malformed)
	assert.Equal(t, 3, offset)

	_, textLen, ok, _ = de.Next("*||*")
	assert.True(t, ok)
	assert.Equal(t, 0, textLen)
}
