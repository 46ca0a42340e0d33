package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("b", &Int{Value: 1})
	d.Set("a", &Int{Value: 2})
	d.Set("c", &Int{Value: 3})

	assert.Equal(t, []string{"b", "a", "c"}, d.Keys())
	assert.Equal(t, 3, d.Len())
}

func TestDictOverwriteKeepsPosition(t *testing.T) {
	d := NewDict()
	d.Set("a", &Int{Value: 1})
	d.Set("b", &Int{Value: 2})
	d.Set("a", &Int{Value: 9})

	assert.Equal(t, []string{"a", "b"}, d.Keys())
	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, &Int{Value: 9}, v)
}

func TestDictGetMissing(t *testing.T) {
	d := NewDict()
	v, ok := d.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestDictZeroValueUsable(t *testing.T) {
	var d Dict
	d.Set("a", &Null{})
	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, &Null{}, v)
}

func TestListAppend(t *testing.T) {
	l := &List{}
	l.Append(&Int{Value: 1})
	l.Append(&String{Value: "x"})

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, &Int{Value: 1}, l.Elements[0])
}

func TestString(t *testing.T) {
	d := NewDict()
	d.Set("n", &Int{Value: 1})
	d.Set("f", &Float{Value: 2.5})
	d.Set("ok", &Bool{Value: true})
	d.Set("no", &Bool{Value: false})
	d.Set("nil", &Null{})
	d.Set("s", &String{Value: "hi"})
	d.Set("l", &List{Elements: []Value{&Int{Value: 1}, &Int{Value: 2}}})

	assert.Equal(t, `{n: 1, f: 2.5, ok: True, no: False, nil: None, s: "hi", l: [1, 2]}`, d.String())
}
