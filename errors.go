package colson

import (
	"reflect"

	"github.com/colson-lang/go-colson/internal/parser"
)

// Error kinds reported by Unmarshal, Decode, and Parse. They are wrapped in
// a ParseError carrying the offending source line; test for them with
// errors.Is.
var (
	// ErrMalformedIndentation: leading whitespace contains a tab or its
	// width is not a multiple of the configured tab size.
	ErrMalformedIndentation = parser.ErrMalformedIndentation

	// ErrMalformedLine: a non-blank, non-comment line matches no
	// classification rule, or names an empty key.
	ErrMalformedLine = parser.ErrMalformedLine

	// ErrMissingParentContainer: a value appears where the attachment
	// target cannot accept it, such as a keyed leaf with no open
	// dictionary, a keyed line under a list, or a value nested under a
	// scalar.
	ErrMissingParentContainer = parser.ErrMissingParent

	// ErrInvalidLiteral: a captured numeric or keyword literal fails to
	// parse despite matching the shape pattern.
	ErrInvalidLiteral = parser.ErrInvalidLiteral

	// ErrEmptyInput: the input produced no value at all.
	ErrEmptyInput = parser.ErrEmptyInput
)

// ParseError describes a single decode failure and where it occurred.
type ParseError = parser.ParseError

// A MarshalerError represents an error from calling a MarshalColSON method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "colson: error calling MarshalColSON for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error from calling an UnmarshalColSON
// or UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "colson: error calling custom unmarshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
