package colson

import (
	"bytes"

	"github.com/colson-lang/go-colson/ast"
	"github.com/colson-lang/go-colson/internal/lexer"
	"github.com/colson-lang/go-colson/internal/parser"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into valid ColSON.
type Marshaler interface {
	MarshalColSON() ([]byte, error)
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// ColSON description of themselves.
type Unmarshaler interface {
	UnmarshalColSON([]byte) error
}

// Marshal returns the ColSON encoding of v.
//
// v may be any Go value composed of booleans, integers, floats, strings,
// slices, arrays, string-keyed maps, structs, and pointers, or an ast.Value
// tree, which is encoded as-is with its dictionary key order preserved.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the ColSON-encoded data and stores the result in the
// value pointed to by v.
func Unmarshal(data []byte, v any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}

// Parse decodes data into an ast.Value tree. Unlike Unmarshal into a Go
// map, the tree preserves dictionary key order, so Parse followed by
// Marshal reproduces a canonical document byte for byte.
func Parse(data []byte, opts ...Option) (ast.Value, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(data, o)
}

func parse(data []byte, o *options) (ast.Value, error) {
	l := lexer.New(data)
	p := parser.New(l, o.tabWidth)
	return p.Parse()
}
