// Package lexer splits ColSON input into lines and classifies each one.
//
// Classification is an ordered rule table: every rule is tried against the
// whole line and the first match wins. The order is load-bearing. Markers
// and escape forms come before the keyed rules, keyed rules come before the
// bare-value rules, and the bare string rule is a maximally permissive
// catch-all, so a line that names a key can never be misread as a bare
// string that happens to contain the separator.
package lexer

import (
	"regexp"
	"strings"

	"github.com/colson-lang/go-colson/internal/token"
)

// keyPat captures the key text of a keyed line: everything before the last
// marker occurrence. The key either ends in a non-space followed by
// whitespace, or abuts the marker with a character that is neither a colon
// nor a space. Surrounding whitespace is trimmed after capture.
const keyPat = `(.*\S\s|.*[^:\s])`

type rule struct {
	class    token.Class
	re       *regexp.Regexp
	key      int  // submatch index of the key, 0 if unkeyed
	lit      int  // submatch index of the literal, 0 if none
	verbatim bool // keep the literal exactly as captured (escape forms)
}

// The rule table. Patterns are RE2 translations of the original notation's
// grammar; the two lookaround constructs it used are rewritten as
// alternations with the same match set, which is why KEYSTRING needs two
// entries (the second admits values that begin with a colon after at least
// one space).
var rules = []rule{
	{class: token.BLANK, re: regexp.MustCompile(`^\s*$`)},
	{class: token.COMMENT, re: regexp.MustCompile(`^\s*::(?:\s*[^:\s].*|\s+\S.*)$`)},
	{class: token.DICT, re: regexp.MustCompile(`^\s*:::\s*$`)},
	{class: token.LIST, re: regexp.MustCompile(`^\s*::\s*$`)},
	{class: token.ESCAPE, re: regexp.MustCompile(`^\s*\\(.*)\\\s*$`), lit: 1, verbatim: true},
	{class: token.KEYDICT, re: regexp.MustCompile(`^\s*` + keyPat + `\s*:::\s*$`), key: 1},
	{class: token.KEYLIST, re: regexp.MustCompile(`^\s*` + keyPat + `\s*::\s*$`), key: 1},
	{class: token.KEYESCAPE, re: regexp.MustCompile(`^\s*` + keyPat + `\s*::\s*\\(.*)\\\s*$`), key: 1, lit: 2, verbatim: true},
	{class: token.KEYKEYWORD, re: regexp.MustCompile(`^\s*` + keyPat + `\s*::\s*(True|False|None)\s*$`), key: 1, lit: 2},
	{class: token.KEYNUMBER, re: regexp.MustCompile(`^\s*` + keyPat + `\s*::\s*(` + token.NumberPattern + `)\s*$`), key: 1, lit: 2},
	{class: token.KEYSTRING, re: regexp.MustCompile(`^\s*` + keyPat + `\s*::\s*([^:\s].*)$`), key: 1, lit: 2},
	{class: token.KEYSTRING, re: regexp.MustCompile(`^\s*` + keyPat + `\s*::\s+(\S.*)$`), key: 1, lit: 2},
	{class: token.KEYWORD, re: regexp.MustCompile(`^\s*(True|False|None)\s*$`), lit: 1},
	{class: token.NUMBER, re: regexp.MustCompile(`^\s*(` + token.NumberPattern + `)\s*$`), lit: 1},
	{class: token.STRING, re: regexp.MustCompile(`^\s*(\S.*\S|\S)\s*$`), lit: 1},
}

// Classify determines which construct a single line represents. The line
// must not contain a newline.
func Classify(line string) token.Line {
	ln := token.Line{Class: token.INVALID, Indent: leadingWhitespace(line)}
	for _, r := range rules {
		m := r.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ln.Class = r.class
		if r.key > 0 {
			ln.Key = strings.TrimSpace(m[r.key])
		}
		if r.lit > 0 {
			if r.verbatim {
				ln.Literal = m[r.lit]
			} else {
				ln.Literal = strings.TrimSpace(m[r.lit])
			}
		}
		return ln
	}
	return ln
}

func leadingWhitespace(line string) string {
	i := strings.IndexFunc(line, func(r rune) bool {
		return r != ' ' && r != '\t'
	})
	if i < 0 {
		i = len(line)
	}
	return line[:i]
}

// Lexer yields classified lines in order, skipping blank and comment lines.
type Lexer struct {
	lines []string
	pos   int
}

// New creates a Lexer over data. Line endings may be LF or CRLF.
func New(data []byte) *Lexer {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return &Lexer{lines: strings.Split(text, "\n")}
}

// Next returns the next non-blank, non-comment line. The second return
// value is false once the input is exhausted.
func (l *Lexer) Next() (token.Line, bool) {
	for l.pos < len(l.lines) {
		raw := l.lines[l.pos]
		l.pos++
		ln := Classify(raw)
		ln.Number = l.pos
		if ln.Class == token.BLANK || ln.Class == token.COMMENT {
			continue
		}
		return ln, true
	}
	return token.Line{}, false
}
