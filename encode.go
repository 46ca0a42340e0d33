package colson

import (
	"encoding"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/colson-lang/go-colson/ast"
	"github.com/colson-lang/go-colson/internal/formatter"
)

// Encoder writes ColSON values to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the ColSON encoding of v to the stream. If v is an
// ast.Value it is encoded as-is; otherwise it is converted to a value tree
// by reflection first. Map keys are sorted so that output is deterministic;
// ast.Dict and struct fields keep their own order.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}

	root, ok := v.(ast.Value)
	if !ok {
		es := &encodeState{tabWidth: o.tabWidth}
		root, err = es.marshalValue(reflect.ValueOf(v))
		if err != nil {
			return err
		}
	}

	f := formatter.New(e.w, o.tabWidth, o.maxDepth)
	return f.Format(root)
}

type encodeState struct {
	tabWidth int
}

func (e *encodeState) marshalCustom(v reflect.Value, u Marshaler) (ast.Value, error) {
	b, err := u.MarshalColSON()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}

	// The custom output must be parsed back into a value tree to be
	// integrated into the tree being built.
	val, err := Parse(b, TabWidth(e.tabWidth))
	if err != nil {
		return nil, &MarshalerError{
			Type: v.Type(),
			Err:  fmt.Errorf("invalid ColSON output: %w", err),
		}
	}
	return val, nil
}

// parseTag splits a colson struct tag into its name and options.
func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	name := parts[0]
	options := make(map[string]bool)
	for _, part := range parts[1:] {
		options[strings.TrimSpace(part)] = true
	}
	return name, options
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

func (e *encodeState) marshalValue(v reflect.Value) (ast.Value, error) { //nolint:gocyclo
	// Handle nil interfaces explicitly to avoid panics.
	if !v.IsValid() || (v.Kind() == reflect.Interface && v.IsNil()) {
		return &ast.Null{}, nil
	}

	// A value tree node passes through untouched.
	if v.CanInterface() {
		if av, ok := v.Interface().(ast.Value); ok {
			return av, nil
		}
	}

	// Check for custom Marshaler implementations. We must check the value
	// itself and a pointer to the value, to handle both value and pointer
	// receivers.
	if v.Type().NumMethod() > 0 && v.CanInterface() {
		if u, ok := v.Interface().(Marshaler); ok {
			return e.marshalCustom(v, u)
		}
		if u, ok := v.Interface().(encoding.TextMarshaler); ok {
			return e.marshalText(v, u)
		}
	}
	if v.Kind() != reflect.Pointer {
		var pv reflect.Value
		if v.CanAddr() {
			pv = v.Addr()
		} else {
			// For non-addressable values (like struct literals), create a
			// pointer to a copy to check for the interface.
			pv = reflect.New(v.Type())
			pv.Elem().Set(v)
		}
		if pv.Type().NumMethod() > 0 && pv.CanInterface() {
			if u, ok := pv.Interface().(Marshaler); ok {
				return e.marshalCustom(pv, u)
			}
			if u, ok := pv.Interface().(encoding.TextMarshaler); ok {
				return e.marshalText(pv, u)
			}
		}
	}

	// Follow pointers and interfaces to find the concrete value.
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return &ast.Null{}, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return &ast.String{Value: v.String()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &ast.Int{Value: v.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val := v.Uint()
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("colson: cannot marshal uint64 %d into ColSON (overflows int64)", val)
		}
		return &ast.Int{Value: int64(val)}, nil
	case reflect.Float32, reflect.Float64:
		return &ast.Float{Value: v.Float()}, nil
	case reflect.Bool:
		return &ast.Bool{Value: v.Bool()}, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return &ast.Null{}, nil
		}
		list := &ast.List{Elements: make([]ast.Value, v.Len())}
		for i := 0; i < v.Len(); i++ {
			elem, err := e.marshalValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			list.Elements[i] = elem
		}
		return list, nil
	case reflect.Map:
		if v.IsNil() {
			return &ast.Null{}, nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("colson: map key type must be a string, got %s", v.Type().Key())
		}

		keys := make([]string, 0, v.Len())
		for _, key := range v.MapKeys() {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)

		dict := ast.NewDict()
		for _, keyStr := range keys {
			value := v.MapIndex(reflect.ValueOf(keyStr).Convert(v.Type().Key()))
			valueNode, err := e.marshalValue(value)
			if err != nil {
				return nil, err
			}
			dict.Set(keyStr, valueNode)
		}
		return dict, nil
	case reflect.Struct:
		dict := ast.NewDict()
		if err := e.marshalStructFields(v, dict); err != nil {
			return nil, err
		}
		return dict, nil
	default:
		if v.IsZero() {
			return &ast.Null{}, nil
		}
		return nil, fmt.Errorf("colson: unsupported type for marshaling: %s", v.Type())
	}
}

// marshalStructFields appends v's fields to dict in declaration order. An
// untagged embedded struct contributes its fields to the enclosing
// dictionary, mirroring how field lookup flattens embedded structs when
// unmarshaling; a tag gives the embedded struct its own key instead.
func (e *encodeState) marshalStructFields(v reflect.Value, dict *ast.Dict) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fieldValue := v.Field(i)

		tagName, opts := parseTag(sf.Tag.Get("colson"))
		if tagName == "-" {
			continue
		}
		if sf.Anonymous && tagName == "" && sf.Type.Kind() == reflect.Struct {
			if err := e.marshalStructFields(fieldValue, dict); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if opts["omitempty"] && isEmptyValue(fieldValue) {
			continue
		}

		keyStr := sf.Name
		if tagName != "" {
			keyStr = tagName
		}

		valueNode, err := e.marshalValue(fieldValue)
		if err != nil {
			return err
		}
		dict.Set(keyStr, valueNode)
	}
	return nil
}

func (e *encodeState) marshalText(v reflect.Value, u encoding.TextMarshaler) (ast.Value, error) {
	b, err := u.MarshalText()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	return &ast.String{Value: string(b)}, nil
}
