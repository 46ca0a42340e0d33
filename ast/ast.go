// Package ast defines the value tree produced and consumed by the ColSON
// transcoder. A tree is built from a closed set of node types: Null, Bool,
// Int, Float, String, List, and Dict. Dict preserves key insertion order,
// which is what makes a decode/encode round trip byte-stable.
package ast

import (
	"bytes"
	"strconv"
	"strings"
)

// Value is the interface implemented by all ColSON value nodes.
type Value interface {
	// String returns a compact, single-line debug representation of the
	// value. It is not ColSON; use the colson package to encode a tree.
	String() string

	valueNode()
}

// Null represents the None literal.
type Null struct{}

func (n *Null) valueNode()     {}
func (n *Null) String() string { return "None" }

// Bool represents a True or False literal.
type Bool struct {
	Value bool
}

func (b *Bool) valueNode() {}
func (b *Bool) String() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// Int represents an integer literal.
type Int struct {
	Value int64
}

func (i *Int) valueNode()     {}
func (i *Int) String() string { return strconv.FormatInt(i.Value, 10) }

// Float represents a floating point literal.
type Float struct {
	Value float64
}

func (f *Float) valueNode()     {}
func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// String represents a text value. The value is the literal text with no
// escape delimiters; escaping is an encoding concern.
type String struct {
	Value string
}

func (s *String) valueNode()     {}
func (s *String) String() string { return strconv.Quote(s.Value) }

// List represents an ordered sequence of values.
type List struct {
	Elements []Value
}

func (l *List) valueNode() {}

// Append adds v to the end of the list.
func (l *List) Append(v Value) {
	l.Elements = append(l.Elements, v)
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Elements) }

func (l *List) String() string {
	var out bytes.Buffer
	elements := []string{}
	for _, el := range l.Elements {
		elements = append(elements, el.String())
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

// Dict represents a mapping from string keys to values. Keys are unique and
// iteration order is insertion order. Assigning to an existing key replaces
// the value but keeps the key's original position.
type Dict struct {
	keys    []string
	entries map[string]Value
}

// NewDict returns a new empty Dict.
func NewDict() *Dict {
	return &Dict{entries: make(map[string]Value)}
}

func (d *Dict) valueNode() {}

// Set assigns v under key, overwriting any existing value. A new key is
// appended to the iteration order; an existing key keeps its position.
func (d *Dict) Set(key string, v Value) {
	if d.entries == nil {
		d.entries = make(map[string]Value)
	}
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = v
}

// Get returns the value stored under key, and whether the key exists.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is shared
// with the Dict and must not be modified.
func (d *Dict) Keys() []string { return d.keys }

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) String() string {
	var out bytes.Buffer
	pairs := []string{}
	for _, k := range d.keys {
		pairs = append(pairs, k+": "+d.entries[k].String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}
