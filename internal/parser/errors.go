package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of a decode. They are wrapped in a
// ParseError and can be tested with errors.Is.
var (
	ErrMalformedIndentation = errors.New("malformed indentation")
	ErrMalformedLine        = errors.New("malformed line")
	ErrMissingParent        = errors.New("missing parent container")
	ErrInvalidLiteral       = errors.New("invalid literal")
	ErrEmptyInput           = errors.New("empty input")
)

// ParseError describes a single decode failure and where it occurred.
type ParseError struct {
	Line int   // 1-based source line, 0 if not tied to a line
	Err  error // one of the sentinel errors above
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("colson: line %d: %s", e.Line, e.Msg)
	}
	return "colson: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }
