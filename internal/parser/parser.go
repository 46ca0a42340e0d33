// Package parser folds a flat sequence of classified lines into a value
// tree. The only state is a depth-indexed scope stack: one entry per open
// indentation level, each holding the value most recently produced at that
// level. Indentation deltas translate into pop counts, so the whole decode
// is a single loop over lines with no recursion.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/colson-lang/go-colson/ast"
	"github.com/colson-lang/go-colson/internal/lexer"
	"github.com/colson-lang/go-colson/internal/token"
)

// Parser decodes one ColSON document.
type Parser struct {
	lx  *lexer.Lexer
	tab int
}

// New creates a parser reading classified lines from lx. tabWidth is the
// number of spaces per indentation level and must be positive.
func New(lx *lexer.Lexer, tabWidth int) *Parser {
	return &Parser{lx: lx, tab: tabWidth}
}

// Parse consumes the whole input and returns the root value.
//
// For each line: the indentation level is resolved, the scope stack is
// popped accordingly, the line's value is attached to the new top of the
// stack, and the value itself is pushed. Same-or-shallower indentation
// (delta <= 0) pops 1-delta entries: one for the sibling slot being
// replaced, plus one per level stepped back out.
func (p *Parser) Parse() (ast.Value, error) {
	var scope []ast.Value
	level := 0

	for {
		ln, ok := p.lx.Next()
		if !ok {
			break
		}

		newLevel, err := p.resolveLevel(ln)
		if err != nil {
			return nil, err
		}
		if delta := newLevel - level; delta <= 0 {
			drop := 1 - delta
			if drop > len(scope) {
				drop = len(scope)
			}
			scope = scope[:len(scope)-drop]
		}
		level = newLevel

		value, err := p.buildValue(ln)
		if err != nil {
			return nil, err
		}

		if ln.Keyed() {
			if len(scope) == 0 {
				switch ln.Class {
				case token.KEYDICT, token.KEYLIST:
					// A keyed container at the root implies a root dictionary.
					scope = append(scope, ast.NewDict())
				default:
					return nil, &ParseError{
						Line: ln.Number,
						Err:  ErrMissingParent,
						Msg:  fmt.Sprintf("%q must have a parent dictionary", display(ln)),
					}
				}
			}
			parent, isDict := scope[len(scope)-1].(*ast.Dict)
			if !isDict {
				return nil, &ParseError{
					Line: ln.Number,
					Err:  ErrMissingParent,
					Msg:  fmt.Sprintf("%q must have a parent dictionary, not a %s", display(ln), describe(scope[len(scope)-1])),
				}
			}
			parent.Set(ln.Key, value)
		} else if len(scope) > 0 {
			parent, isList := scope[len(scope)-1].(*ast.List)
			if !isList {
				return nil, &ParseError{
					Line: ln.Number,
					Err:  ErrMissingParent,
					Msg:  fmt.Sprintf("unkeyed value %q must have a parent list, not a %s", display(ln), describe(scope[len(scope)-1])),
				}
			}
			parent.Append(value)
		}
		scope = append(scope, value)
	}

	if len(scope) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput, Msg: "there is nothing to parse"}
	}
	return scope[0], nil
}

// resolveLevel converts a line's leading whitespace into an indentation
// level. Indentation must be spaces only, and its width must be an exact
// multiple of the tab size.
func (p *Parser) resolveLevel(ln token.Line) (int, error) {
	if strings.ContainsRune(ln.Indent, '\t') {
		return 0, &ParseError{
			Line: ln.Number,
			Err:  ErrMalformedIndentation,
			Msg:  "indentation contains a tab character",
		}
	}
	width := len(ln.Indent)
	if width%p.tab != 0 {
		return 0, &ParseError{
			Line: ln.Number,
			Err:  ErrMalformedIndentation,
			Msg:  fmt.Sprintf("indentation of width %d is not a multiple of the tab size %d", width, p.tab),
		}
	}
	return width / p.tab, nil
}

func (p *Parser) buildValue(ln token.Line) (ast.Value, error) {
	if ln.Keyed() && ln.Key == "" {
		return nil, &ParseError{
			Line: ln.Number,
			Err:  ErrMalformedLine,
			Msg:  "empty key before separator",
		}
	}

	switch ln.Class {
	case token.DICT, token.KEYDICT:
		return ast.NewDict(), nil
	case token.LIST, token.KEYLIST:
		return &ast.List{}, nil
	case token.ESCAPE, token.KEYESCAPE, token.STRING, token.KEYSTRING:
		return &ast.String{Value: ln.Literal}, nil
	case token.KEYWORD, token.KEYKEYWORD:
		return p.parseKeyword(ln)
	case token.NUMBER, token.KEYNUMBER:
		return p.parseNumber(ln)
	default:
		return nil, &ParseError{
			Line: ln.Number,
			Err:  ErrMalformedLine,
			Msg:  "line matches no ColSON construct",
		}
	}
}

func (p *Parser) parseKeyword(ln token.Line) (ast.Value, error) {
	switch ln.Literal {
	case "True":
		return &ast.Bool{Value: true}, nil
	case "False":
		return &ast.Bool{Value: false}, nil
	case "None":
		return &ast.Null{}, nil
	}
	return nil, &ParseError{
		Line: ln.Number,
		Err:  ErrInvalidLiteral,
		Msg:  fmt.Sprintf("%q cannot be processed as True, False or None", ln.Literal),
	}
}

// parseNumber converts a numeric literal. Literals with no fractional
// digits and no exponent become integers, including a bare trailing dot:
// "3." is the integer 3, "3.0" is a float. Integers too large for int64
// fall back to float. Literals beyond float64's range are rejected, since
// an infinity has no numeric spelling; literals that underflow to zero are
// kept.
func (p *Parser) parseNumber(ln token.Line) (ast.Value, error) {
	lit := ln.Literal
	if token.IsIntegral(lit) {
		if i, err := strconv.ParseInt(strings.TrimSuffix(lit, "."), 10, 64); err == nil {
			return &ast.Int{Value: i}, nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	switch {
	case err == nil:
	case errors.Is(err, strconv.ErrRange) && !math.IsInf(f, 0):
	case errors.Is(err, strconv.ErrRange):
		return nil, &ParseError{
			Line: ln.Number,
			Err:  ErrInvalidLiteral,
			Msg:  fmt.Sprintf("%q is out of range for a number", lit),
		}
	default:
		return nil, &ParseError{
			Line: ln.Number,
			Err:  ErrInvalidLiteral,
			Msg:  fmt.Sprintf("%q cannot be processed as a number", lit),
		}
	}
	return &ast.Float{Value: f}, nil
}

// display reconstructs a compact rendering of the line for error messages,
// truncating long literals.
func display(ln token.Line) string {
	switch ln.Class {
	case token.KEYDICT:
		return ln.Key + " :::"
	case token.KEYLIST:
		return ln.Key + " ::"
	case token.KEYESCAPE:
		return ln.Key + ` :: \` + preview(ln.Literal) + `\`
	case token.ESCAPE:
		return `\` + preview(ln.Literal) + `\`
	}
	if ln.Keyed() {
		return ln.Key + " :: " + preview(ln.Literal)
	}
	return preview(ln.Literal)
}

func preview(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}

func describe(v ast.Value) string {
	switch v.(type) {
	case *ast.Dict:
		return "dictionary"
	case *ast.List:
		return "list"
	default:
		return "scalar"
	}
}
