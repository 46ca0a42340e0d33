package colson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	colson "github.com/colson-lang/go-colson"
)

func TestFormat(t *testing.T) {
	input := ":: top of file\n" +
		"\n" +
		":::\n" +
		"    :: per-key note\n" +
		"    count :: 3.\n" +
		"    label :: \\plain\\\n" +
		"    ratio :: 2.50e0\n"

	want := ":::\n" +
		"    count :: 3\n" +
		"    label :: plain\n" +
		"    ratio :: 2.5"

	got, err := colson.Format([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestFormatKeepsNecessaryEscapes(t *testing.T) {
	input := ":::\n    a :: \\True\\\n    b :: \\ spaced \\\n"
	want := ":::\n    a :: \\True\\\n    b :: \\ spaced \\"

	got, err := colson.Format([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestFormatTabWidth(t *testing.T) {
	input := ":::\n  a :: 1\n  b :::\n    c :: 2\n"
	want := ":::\n  a :: 1\n  b :::\n    c :: 2"

	got, err := colson.Format([]byte(input), colson.TabWidth(2))
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestFormatInvalidInput(t *testing.T) {
	_, err := colson.Format([]byte("key :: 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, colson.ErrMissingParentContainer)
}

func TestFormatEmptyInput(t *testing.T) {
	_, err := colson.Format(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, colson.ErrEmptyInput)
}
