package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"True", "False", "None"} {
		assert.True(t, IsKeyword(kw), kw)
	}
	for _, s := range []string{"true", "false", "none", "TRUE", "Null", ""} {
		assert.False(t, IsKeyword(s), s)
	}
}

func TestIsNumber(t *testing.T) {
	valid := []string{"0", "42", "-7", "+7", "3.", "3.0", ".5", "+.5", "-0.25", "1e3", "2E-4", "-2.5e1", "3.e2", "007"}
	for _, s := range valid {
		assert.True(t, IsNumber(s), s)
	}
	invalid := []string{"", "-", ".", "e3", "3e", "1.2.3", "0x10", "1_000", "nan", "abc", "3 "}
	for _, s := range invalid {
		assert.False(t, IsNumber(s), s)
	}
}

func TestIsIntegral(t *testing.T) {
	integral := []string{"0", "42", "-7", "+7", "3.", "007"}
	for _, s := range integral {
		assert.True(t, IsIntegral(s), s)
	}
	fractional := []string{"3.0", ".5", "1e3", "-2.5e1", "3.e2", ""}
	for _, s := range fractional {
		assert.False(t, IsIntegral(s), s)
	}
}

func TestLineKeyed(t *testing.T) {
	keyed := []Class{KEYDICT, KEYLIST, KEYESCAPE, KEYKEYWORD, KEYNUMBER, KEYSTRING}
	for _, c := range keyed {
		assert.True(t, Line{Class: c}.Keyed(), string(c))
	}
	unkeyed := []Class{BLANK, COMMENT, DICT, LIST, ESCAPE, KEYWORD, NUMBER, STRING, INVALID}
	for _, c := range unkeyed {
		assert.False(t, Line{Class: c}.Keyed(), string(c))
	}
}
