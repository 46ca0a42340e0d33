// Package formatter emits the canonical line form of a value tree. The walk
// is the exact inverse of the parser: a Dict line, then each entry one level
// deeper in insertion order; a List line, then each element one level
// deeper; a single line per leaf.
package formatter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/colson-lang/go-colson/ast"
	"github.com/colson-lang/go-colson/internal/token"
)

// Formatter writes a ColSON rendering of a value tree to an output stream.
type Formatter struct {
	w        io.Writer
	indent   string
	maxDepth int
	depth    int
	started  bool
}

// New returns a formatter writing to w. tabWidth is the number of spaces
// per indentation level; maxDepth bounds nesting so that a cyclic tree
// fails instead of recursing forever.
func New(w io.Writer, tabWidth, maxDepth int) *Formatter {
	return &Formatter{
		w:        w,
		indent:   strings.Repeat(" ", tabWidth),
		maxDepth: maxDepth,
	}
}

// Format writes v as ColSON. Lines are separated by a single newline with
// no trailing newline.
func (f *Formatter) Format(v ast.Value) error {
	return f.writeValue(v, "", false)
}

func (f *Formatter) writeValue(v ast.Value, key string, keyed bool) error {
	f.depth++
	if f.depth > f.maxDepth {
		return fmt.Errorf("colson: value tree exceeds maximum nesting depth %d", f.maxDepth)
	}
	defer func() { f.depth-- }()

	prefix := ""
	if keyed {
		prefix = key + " "
	}

	switch node := v.(type) {
	case *ast.Dict:
		if err := f.writeLine(prefix + ":::"); err != nil {
			return err
		}
		for _, k := range node.Keys() {
			entry, _ := node.Get(k)
			if err := f.writeValue(entry, k, true); err != nil {
				return err
			}
		}
		return nil
	case *ast.List:
		if err := f.writeLine(prefix + "::"); err != nil {
			return err
		}
		for _, el := range node.Elements {
			if err := f.writeValue(el, "", false); err != nil {
				return err
			}
		}
		return nil
	default:
		lit, err := leafLiteral(v)
		if err != nil {
			return err
		}
		if keyed {
			prefix = key + " :: "
		}
		return f.writeLine(prefix + lit)
	}
}

// writeLine emits one line at the current depth. The depth counter is one
// ahead inside writeValue, so the root sits at indentation level zero.
func (f *Formatter) writeLine(text string) error {
	var sb strings.Builder
	if f.started {
		sb.WriteByte('\n')
	}
	f.started = true
	for i := 1; i < f.depth; i++ {
		sb.WriteString(f.indent)
	}
	sb.WriteString(text)
	_, err := io.WriteString(f.w, sb.String())
	return err
}

// leafLiteral renders a scalar node. Values the line form cannot carry
// fail here: infinities and NaN have no numeric spelling, and a newline
// inside a string would split it into two lines on re-read.
func leafLiteral(v ast.Value) (string, error) {
	switch node := v.(type) {
	case *ast.Null:
		return "None", nil
	case *ast.Bool:
		if node.Value {
			return "True", nil
		}
		return "False", nil
	case *ast.Int:
		return strconv.FormatInt(node.Value, 10), nil
	case *ast.Float:
		if math.IsInf(node.Value, 0) || math.IsNaN(node.Value) {
			return "", fmt.Errorf("colson: unsupported value: %s", strconv.FormatFloat(node.Value, 'g', -1, 64))
		}
		return formatFloat(node.Value), nil
	case *ast.String:
		if strings.ContainsRune(node.Value, '\n') {
			return "", fmt.Errorf("colson: unsupported value: string containing a newline %q", node.Value)
		}
		if needsEscape(node.Value) {
			return `\` + node.Value + `\`, nil
		}
		return node.Value, nil
	}
	// Unreachable for trees built from the ast package's node types.
	return v.String(), nil
}

// formatFloat renders a float with the shortest representation that parses
// back to the same value, forcing a decimal point or exponent so the result
// re-decodes as a float rather than an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// needsEscape reports whether a string must round-trip through the escape
// form: text that is empty, contains the marker, carries leading or
// trailing whitespace, is already escape-wrapped, or would re-classify as a
// keyword or number when read back.
func needsEscape(s string) bool {
	if s == "" {
		return true
	}
	if strings.Contains(s, "::") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsSpace(first) || unicode.IsSpace(last) {
		return true
	}
	if strings.HasPrefix(s, `\`) && strings.HasSuffix(s, `\`) {
		return true
	}
	return token.IsKeyword(s) || token.IsNumber(s)
}
