package colson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	colson "github.com/colson-lang/go-colson"
	"github.com/colson-lang/go-colson/ast"
)

// Decoding what we encode must reproduce the value, including the
// int/float distinction and strings that look like keywords or numbers.
func TestRoundTripValues(t *testing.T) {
	tests := []struct {
		name string
		v    any
	}{
		{"int", int64(42)},
		{"negative int", int64(-7)},
		{"float", 2.5},
		{"integral float", 3.0},
		{"bool true", true},
		{"bool false", false},
		{"nil", nil},
		{"string", "hello world"},
		{"empty string", ""},
		{"keyword-shaped string", "True"},
		{"number-shaped string", "3.5"},
		{"string with marker", "a :: b"},
		{"string with padding", "  padded  "},
		{"list", []any{int64(1), "two", 3.0, nil}},
		{"dict", map[string]any{"a": int64(1), "b": []any{"x", "y"}}},
		{"nested", map[string]any{
			"outer": map[string]any{
				"inner": []any{map[string]any{"deep": true}},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := colson.Marshal(tt.v)
			require.NoError(t, err)

			var got any
			require.NoError(t, colson.Unmarshal(data, &got))
			assert.Equal(t, tt.v, got)
		})
	}
}

// Encoding is canonical: re-encoding a decoded document is a fixed point.
func TestReencodeIdempotent(t *testing.T) {
	input := ":: comment to drop\n" +
		":::\n" +
		"    name :: demo\n" +
		"    items ::\n" +
		"        :::\n" +
		"            qty :: 3.\n" +
		"        :::\n" +
		"            qty :: 2.5\n"

	first, err := colson.Format([]byte(input))
	require.NoError(t, err)
	second, err := colson.Format(first)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestParsePreservesKeyOrder(t *testing.T) {
	input := ":::\n    zebra :: 1\n    apple :: 2\n    mango :: 3"

	v, err := colson.Parse([]byte(input))
	require.NoError(t, err)

	d, ok := v.(*ast.Dict)
	require.True(t, ok)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, d.Keys())

	out, err := colson.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestStructRoundTrip(t *testing.T) {
	type Item struct {
		Name string  `colson:"name"`
		Qty  int     `colson:"qty"`
		Unit float64 `colson:"unit"`
	}
	type Doc struct {
		Title string `colson:"title"`
		Items []Item `colson:"items"`
	}

	in := Doc{
		Title: "inventory",
		Items: []Item{
			{Name: "apple", Qty: 12, Unit: 0.5},
			{Name: "pear", Qty: 3, Unit: 0.75},
		},
	}

	data, err := colson.Marshal(in)
	require.NoError(t, err)

	var out Doc
	require.NoError(t, colson.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

// Embedded fields are flattened the same way on both sides, so a struct
// with an embedded struct survives a marshal/unmarshal round trip.
func TestEmbeddedStructRoundTrip(t *testing.T) {
	type Base struct {
		ID int `colson:"id"`
	}
	type Thing struct {
		Base
		Name string `colson:"name"`
	}

	in := Thing{Base: Base{ID: 7}, Name: "widget"}
	data, err := colson.Marshal(in)
	require.NoError(t, err)

	var out Thing
	require.NoError(t, colson.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

// A keyed container line at the root implies a root dictionary, so a
// document may start with its first key instead of an explicit ::: line.
func TestImplicitRootDocument(t *testing.T) {
	input := "servers ::\n" +
		"    alpha\n" +
		"    beta\n" +
		"region :: eu-west\n"

	var v any
	require.NoError(t, colson.Unmarshal([]byte(input), &v))
	assert.Equal(t, map[string]any{
		"servers": []any{"alpha", "beta"},
		"region":  "eu-west",
	}, v)
}

// A numeric literal beyond float64's range must fail to decode rather than
// produce an infinity the encoder could never write back.
func TestOutOfRangeNumber(t *testing.T) {
	var v any
	err := colson.Unmarshal([]byte("1e999"), &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, colson.ErrInvalidLiteral)
}

func TestNumericClassification(t *testing.T) {
	input := ":::\n" +
		"    a :: 3\n" +
		"    b :: 3.\n" +
		"    c :: 3.0\n" +
		"    d :: -2.5e1\n" +
		"    e :: 1e3\n"

	var v map[string]any
	require.NoError(t, colson.Unmarshal([]byte(input), &v))
	assert.Equal(t, int64(3), v["a"])
	assert.Equal(t, int64(3), v["b"], "a trailing dot with no fraction is an integer")
	assert.Equal(t, 3.0, v["c"])
	assert.Equal(t, -25.0, v["d"])
	assert.Equal(t, 1000.0, v["e"])
}
