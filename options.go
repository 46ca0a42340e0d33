package colson

import "fmt"

const (
	defaultTabWidth = 4
	defaultMaxDepth = 1000
)

type options struct {
	tabWidth int
	maxDepth int
}

// Option configures encoding and decoding behavior.
type Option func(*options) error

func newOptions(opts []Option) (*options, error) {
	o := &options{
		tabWidth: defaultTabWidth,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// TabWidth returns an Option that sets the number of spaces per
// indentation level for both decoding and encoding. The default is 4.
//
// The width n must be a positive integer.
func TabWidth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("colson: tab width must be a positive integer")
		}
		o.tabWidth = n
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum nesting depth for the
// decoder's reflection mapping and the encoder's tree walk. This guards
// against unmarshaling into deeply recursive structures and against
// encoding cyclic trees.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("colson: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
