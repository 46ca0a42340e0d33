/*
Package colson provides an idiomatic Go interface for parsing and encoding
ColSON, a line-oriented notation that encodes structure purely through
indentation and a small set of colon markers, with no braces, brackets, or
quoting. The API is designed to be familiar to Go developers, closely
mirroring the standard `encoding/json` package.

A ColSON document looks like this:

	:::
	    name :: colson
	    released :: True
	    version :: 1.2
	    tags ::
	        format
	        serialization

A line is one of a handful of constructs: ":::" opens a dictionary, "::"
opens a list, "key :: value" assigns a scalar, and a bare line is a list
element. Nesting is expressed by indenting one tab width (four spaces by
default, configurable with TabWidth). True, False, and None are reserved
literals; anything that parses as a number is a number; everything else is a
string. Strings that would be ambiguous (empty, containing "::", or padded
with whitespace) are wrapped in backslashes: `\ like this \`.

The package offers two workflows:

1. Data-oriented encoding and decoding. Marshal and Unmarshal convert
between ColSON and Go structs, maps, slices, and scalars:

	type Config struct {
		Name    string  `colson:"name"`
		Version float64 `colson:"version"`
	}

	var cfg Config
	if err := colson.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

2. Order-preserving tree manipulation. Parse returns an ast.Value tree that
records dictionary insertion order, so a parse/marshal round trip reproduces
a canonical document byte for byte:

	v, err := colson.Parse(data)
	if err != nil {
		// handle error
	}
	out, err := colson.Marshal(v)

Customization is available via struct field tags (e.g.
`colson:"key,omitempty"`) and by implementing the colson.Marshaler and
colson.Unmarshaler interfaces.
*/
package colson
