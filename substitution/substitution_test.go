package substitution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/submerge/substitution"
)

func TestMap_TryGet_is_case_sensitive(t *testing.T) {
	t.Parallel()

	ma := substitution.Map{}.Set("key", "substitution")

	got, ok := ma.TryGet("key")
	assert.True(t, ok)
	assert.Equal(t, "substitution", got)

	_, ok = ma.TryGet("KEY")
	assert.False(t, ok)
}

func TestMap_Set_updates_existing(t *testing.T) {
	t.Parallel()

	ma := substitution.Map{}.
		Set("key", "first").
		Set("key", "second")

	assert.Len(t, ma, 1)
	assert.Equal(t, "second", ma["key"])
}

func TestMap_TryGet_empty_value_is_present(t *testing.T) {
	t.Parallel()

	ma := substitution.Map{"blank": ""}

	got, ok := ma.TryGet("blank")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestMap_Merge_and_Keys(t *testing.T) {
	t.Parallel()

	ma := substitution.Map{"b": "1", "a": "1"}.
		Merge(substitution.Map{"b": "2", "c": "3"})

	assert.Equal(t, []string{"a", "b", "c"}, ma.Keys())
	assert.Equal(t, "2", ma["b"])
}

func TestChain_first_hit_wins(t *testing.T) {
	t.Parallel()

	ch := substitution.Chain{
		substitution.Map{"a": "from-first"},
		substitution.LookupFunc(func(key string) (string, bool) {
			return "func-" + key, key != "missing"
		}),
	}

	got, ok := ch.TryGet("a")
	assert.True(t, ok)
	assert.Equal(t, "from-first", got)

	got, ok = ch.TryGet("b")
	assert.True(t, ok)
	assert.Equal(t, "func-b", got)

	_, ok = ch.TryGet("missing")
	assert.False(t, ok)
}

func TestValues_Get(t *testing.T) {
	t.Parallel()

	va := substitution.NewValues("John").Append("30")

	got, err := va.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "30", got)

	_, err = va.Get(2)
	require.ErrorIs(t, err, substitution.ErrNotEnoughValues)

	_, err = va.Get(-1)
	require.ErrorIs(t, err, substitution.ErrNotEnoughValues)
}

type address struct {
	City string
	Zip  int `json:"postcode"`
}

type person struct {
	Name    string
	Age     int
	Admin   bool
	Tags    []string
	Home    address
	Nothing *string
	secret  string
}

func TestFromObject(t *testing.T) {
	t.Parallel()

	got, err := substitution.FromObject(person{
		Name:   "John",
		Age:    30,
		Admin:  true,
		Tags:   []string{"a", "b"},
		Home:   address{City: "Lyon", Zip: 69001},
		secret: "hidden",
	})
	require.NoError(t, err)

	assert.Equal(t, substitution.Map{
		"name":          "John",
		"age":           "30",
		"admin":         "true",
		"tags":          `["a","b"]`,
		"home.city":     "Lyon",
		"home.postcode": "69001",
		"nothing":       "",
	}, got)
}

func TestFromObject_map_input(t *testing.T) {
	t.Parallel()

	got, err := substitution.FromObject(map[string]any{
		"Big": 12345678901234567,
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567", got["big"])
}

func TestFromObject_rejects_non_object(t *testing.T) {
	t.Parallel()

	_, err := substitution.FromObject([]int{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extracting substitutions")
}

func TestFromObject_rejects_unencodable(t *testing.T) {
	t.Parallel()

	_, err := substitution.FromObject(map[string]any{
		"ch": make(chan int),
	})
	require.Error(t, err)
}

func TestFromJSON_keeps_key_case(t *testing.T) {
	t.Parallel()

	got, err := substitution.FromJSON(
		[]byte(`{"NAME": "api", "Meta": {"Port": 8080}}`),
	)
	require.NoError(t, err)

	assert.Equal(t, substitution.Map{
		"NAME":      "api",
		"Meta.Port": "8080",
	}, got)
}

func TestFromJSON_rejects_invalid(t *testing.T) {
	t.Parallel()

	_, err := substitution.FromJSON([]byte(`["a"]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding substitutions")
}
