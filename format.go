package colson

// Format rewrites ColSON text into its canonical form: indentation
// normalized to the configured tab width, literals re-emitted in their
// canonical spellings, and ambiguous strings escape-wrapped. Blank and
// comment lines are dropped; dictionary key order is preserved.
func Format(data []byte, opts ...Option) ([]byte, error) {
	v, err := Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(v, opts...)
}
