// Package token defines the line-level constructs recognized by the ColSON
// classifier, and the shape tests shared between the lexer and the
// formatter.
package token

import "regexp"

// Class identifies which construct a single line of ColSON represents.
type Class string

// Line is one classified line of input.
type Line struct {
	Class   Class
	Key     string // trimmed key text, empty for unkeyed constructs
	Literal string // captured literal text; verbatim for escape forms
	Indent  string // raw leading whitespace
	Number  int    // 1-based source line number
}

// Keyed reports whether the line carries a key.
func (l Line) Keyed() bool {
	switch l.Class {
	case KEYDICT, KEYLIST, KEYESCAPE, KEYKEYWORD, KEYNUMBER, KEYSTRING:
		return true
	}
	return false
}

const (
	// INVALID marks a line no classification rule matched. The string
	// catch-all makes this unreachable in practice; it exists so the
	// parser can fail loudly instead of guessing.
	INVALID Class = "INVALID"

	BLANK   Class = "BLANK"   // empty or whitespace-only line
	COMMENT Class = "COMMENT" // :: some text

	DICT   Class = "DICT"   // :::
	LIST   Class = "LIST"   // ::
	ESCAPE Class = "ESCAPE" // \text\

	KEYDICT    Class = "KEYDICT"    // key :::
	KEYLIST    Class = "KEYLIST"    // key ::
	KEYESCAPE  Class = "KEYESCAPE"  // key :: \text\
	KEYKEYWORD Class = "KEYKEYWORD" // key :: True|False|None
	KEYNUMBER  Class = "KEYNUMBER"  // key :: 42
	KEYSTRING  Class = "KEYSTRING"  // key :: text

	KEYWORD Class = "KEYWORD" // True|False|None
	NUMBER  Class = "NUMBER"  // 42
	STRING  Class = "STRING"  // text
)

// NumberPattern matches a numeric literal: optional sign, digits, optional
// fractional part, optional exponent. It is embedded into the classifier's
// line patterns.
const NumberPattern = `[+-]?(?:[0-9]*\.[0-9]+|[0-9]+\.?)(?:[eE][+-]?[0-9]+)?`

var (
	numberRE = regexp.MustCompile(`^` + NumberPattern + `$`)

	// An integral literal has no fractional digits and no exponent. A bare
	// trailing dot still counts as integral: "3." decodes to the integer 3,
	// while "3.0" decodes to a float.
	integralRE = regexp.MustCompile(`^[+-]?[0-9]+\.?$`)
)

var keywords = map[string]bool{
	"True":  true,
	"False": true,
	"None":  true,
}

// IsKeyword reports whether s is one of the reserved literals True, False,
// or None.
func IsKeyword(s string) bool { return keywords[s] }

// IsNumber reports whether s matches the numeric literal pattern.
func IsNumber(s string) bool { return numberRE.MatchString(s) }

// IsIntegral reports whether s is a numeric literal that decodes to an
// integer rather than a float.
func IsIntegral(s string) bool { return integralRE.MatchString(s) }
