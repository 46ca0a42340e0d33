package colson

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/colson-lang/go-colson/ast"
	"github.com/colson-lang/go-colson/internal/formatter"
)

// Decoder reads and decodes ColSON values from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure the decoding process,
// such as setting the indentation width with TabWidth.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the ColSON-encoded value from its input and stores it in the
// value pointed to by v. If v is nil or not a pointer, Decode returns an
// error.
//
// If v points to an ast.Value, the decoded tree is stored directly with its
// dictionary key order intact.
//
// Note: this is a non-streaming implementation. It reads the entire reader
// into memory before parsing.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("colson: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}

	root, err := parse(data, o)
	if err != nil {
		return err
	}

	if out, ok := v.(*ast.Value); ok {
		*out = root
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("colson: Unmarshal(non-pointer %T or nil)", v)
	}
	ds := &decodeState{depth: o.maxDepth, tabWidth: o.tabWidth}
	return ds.mapValue(root, rv.Elem())
}

type decodeState struct {
	depth    int
	tabWidth int
}

func (ds *decodeState) mapValue(val ast.Value, rv reflect.Value) error { //nolint:gocyclo
	ds.depth--
	if ds.depth <= 0 {
		return fmt.Errorf("colson: reached max recursion depth")
	}
	defer func() { ds.depth++ }()

	if _, isNull := val.(*ast.Null); isNull {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
	}

	// Attempt to use a custom unmarshaler if available.
	handled, err := ds.tryCustomUnmarshal(val, rv)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface {
		return ds.mapInterface(val, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("colson: cannot set value of type %s", rv.Type())
	}

	switch node := val.(type) {
	case *ast.Null:
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	case *ast.String:
		return ds.mapString(node, rv)
	case *ast.Int:
		return ds.mapInt(node, rv)
	case *ast.Float:
		return ds.mapFloat(node, rv)
	case *ast.Bool:
		return ds.mapBool(node, rv)
	case *ast.List:
		switch rv.Kind() {
		case reflect.Slice:
			return ds.mapSlice(node, rv)
		case reflect.Array:
			return ds.mapArray(node, rv)
		default:
			return fmt.Errorf("colson: cannot unmarshal list into Go value of type %s", rv.Type())
		}
	case *ast.Dict:
		switch rv.Kind() {
		case reflect.Struct:
			return ds.mapStruct(node, rv)
		case reflect.Map:
			return ds.mapMap(node, rv)
		default:
			return fmt.Errorf("colson: cannot unmarshal dictionary into Go value of type %s", rv.Type())
		}
	default:
		return fmt.Errorf("colson: mapping for value type %T not implemented", node)
	}
}

// tryCustomUnmarshal attempts to use a custom unmarshaler (colson.Unmarshaler
// or encoding.TextUnmarshaler) on the given reflect.Value. It returns true
// if a custom unmarshaler was found and used, in which case the caller
// should not proceed with default unmarshaling.
func (ds *decodeState) tryCustomUnmarshal(val ast.Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		var buf bytes.Buffer
		f := formatter.New(&buf, ds.tabWidth, defaultMaxDepth)
		if err := f.Format(val); err != nil {
			return true, fmt.Errorf("colson: failed to re-encode value for custom unmarshaler: %w", err)
		}
		if err := u.UnmarshalColSON(buf.Bytes()); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		s, isString := val.(*ast.String)
		if !isString {
			// TextUnmarshaler can only be used on string values.
			return false, nil
		}
		if err := u.UnmarshalText([]byte(s.Value)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	return false, nil
}

func (ds *decodeState) mapString(s *ast.String, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return fmt.Errorf("colson: cannot unmarshal string into Go value of type %s", rv.Type())
	}
	rv.SetString(s.Value)
	return nil
}

func (ds *decodeState) mapInt(i *ast.Int, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i.Value) {
			return fmt.Errorf("colson: integer value %d overflows Go value of type %s", i.Value, rv.Type())
		}
		rv.SetInt(i.Value)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i.Value < 0 || rv.OverflowUint(uint64(i.Value)) {
			return fmt.Errorf("colson: integer value %d overflows Go value of type %s", i.Value, rv.Type())
		}
		rv.SetUint(uint64(i.Value))
		return nil
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(i.Value))
		return nil
	default:
		return fmt.Errorf("colson: cannot unmarshal integer into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapFloat(f *ast.Float, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f.Value) {
			return fmt.Errorf("colson: float value %f overflows Go value of type %s", f.Value, rv.Type())
		}
		rv.SetFloat(f.Value)
		return nil
	default:
		return fmt.Errorf("colson: cannot unmarshal float into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapBool(b *ast.Bool, rv reflect.Value) error {
	if rv.Kind() != reflect.Bool {
		return fmt.Errorf("colson: cannot unmarshal boolean into Go value of type %s", rv.Type())
	}
	rv.SetBool(b.Value)
	return nil
}

func (ds *decodeState) mapSlice(l *ast.List, rv reflect.Value) error {
	sliceType := rv.Type()
	newSlice := reflect.MakeSlice(sliceType, len(l.Elements), len(l.Elements))
	for i, elem := range l.Elements {
		if err := ds.mapValue(elem, newSlice.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func (ds *decodeState) mapArray(l *ast.List, rv reflect.Value) error {
	if rv.Len() != len(l.Elements) {
		return fmt.Errorf("colson: cannot unmarshal list of length %d into Go array of length %d", len(l.Elements), rv.Len())
	}
	for i, elem := range l.Elements {
		if err := ds.mapValue(elem, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) mapMap(d *ast.Dict, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("colson: cannot unmarshal dictionary into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		for _, k := range rv.MapKeys() {
			rv.SetMapIndex(k, reflect.Value{}) // The zero Value deletes the key
		}
	}
	elemType := mapType.Elem()
	for _, key := range d.Keys() {
		entry, _ := d.Get(key)
		newVal := reflect.New(elemType).Elem()
		if err := ds.mapValue(entry, newVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(mapType.Key()), newVal)
	}
	return nil
}

func (ds *decodeState) mapStruct(d *ast.Dict, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	for _, key := range d.Keys() {
		entry, _ := d.Get(key)
		if targetField := findField(fields, key); targetField != nil {
			fieldVal := rv.FieldByIndex(targetField.idx)
			if fieldVal.IsValid() && fieldVal.CanSet() {
				if err := ds.mapValue(entry, fieldVal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (ds *decodeState) mapInterface(val ast.Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("colson: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	var concreteVal reflect.Value
	switch val.(type) {
	case *ast.String:
		var s string
		concreteVal = reflect.ValueOf(&s).Elem()
	case *ast.Int:
		var i int64
		concreteVal = reflect.ValueOf(&i).Elem()
	case *ast.Float:
		var f float64
		concreteVal = reflect.ValueOf(&f).Elem()
	case *ast.Bool:
		var b bool
		concreteVal = reflect.ValueOf(&b).Elem()
	case *ast.List:
		var l []any
		concreteVal = reflect.ValueOf(&l).Elem()
	case *ast.Dict:
		var d map[string]any
		concreteVal = reflect.ValueOf(&d).Elem()
	case *ast.Null:
		return nil
	default:
		return fmt.Errorf("colson: cannot determine concrete type for interface{} for value %T", val)
	}
	if err := ds.mapValue(val, concreteVal); err != nil {
		return err
	}
	rv.Set(concreteVal)
	return nil
}

// findField finds the target field in a struct's cached fields. It first
// attempts a case-sensitive match, then falls back to a case-insensitive
// match.
func findField(fields map[string]field, keyStr string) *field {
	if f, ok := fields[keyStr]; ok {
		return &f
	}
	if f, ok := fields[strings.ToLower(keyStr)]; ok {
		return &f
	}
	return nil
}

// A field represents a single field in a struct.
type field struct {
	idx []int
}

// appendIndex copies idx before appending, so index paths stored for
// sibling fields never share a backing array.
func appendIndex(idx []int, i int) []int {
	out := make([]int, len(idx), len(idx)+1)
	copy(out, idx)
	return append(out, i)
}

// fieldCache caches a map of struct field names to their properties.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// cachedFields returns a map of field names to field properties for the
// given type. The result is cached to avoid repeated reflection work.
func cachedFields(t reflect.Type) map[string]field { //nolint:gocognit
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	var walk func(t reflect.Type, idx []int)
	walk = func(t reflect.Type, idx []int) {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			tag := sf.Tag.Get("colson")
			if tag == "-" {
				continue
			}
			// An untagged embedded struct contributes its fields to the
			// enclosing namespace; a tag gives it its own key, like any
			// other field.
			if sf.Anonymous && tag == "" && sf.Type.Kind() == reflect.Struct {
				walk(sf.Type, appendIndex(idx, i))
				continue
			}
			if !sf.IsExported() {
				continue
			}

			f := field{idx: appendIndex(idx, i)}
			tagName := strings.Split(tag, ",")[0]

			// Store entries for the original tag name and field name.
			if tagName != "" {
				fields[tagName] = f
			}
			fields[sf.Name] = f

			// Store lower-cased versions for case-insensitive fallback,
			// but do not overwrite an existing case-sensitive match.
			if tagName != "" {
				lowerTagName := strings.ToLower(tagName)
				if _, ok := fields[lowerTagName]; !ok {
					fields[lowerTagName] = f
				}
			}
			lowerFieldName := strings.ToLower(sf.Name)
			if _, ok := fields[lowerFieldName]; !ok {
				fields[lowerFieldName] = f
			}
		}
	}
	walk(t, nil)

	fieldCache.Store(t, fields)
	return fields
}
