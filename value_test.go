// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hw "github.com/db47h/hwgen"
)

// quick generates arbitrary bytes, fold them into valid values.
func val(b uint8) hw.Value { return hw.Values()[b%4] }

func TestValue_doubleNot(t *testing.T) {
	for _, v := range []hw.Value{hw.Zero, hw.One} {
		assert.Equal(t, v, v.Not().Not())
	}
	assert.Equal(t, hw.Unknown, hw.Unknown.Not())
	assert.Equal(t, hw.Unknown, hw.Floating.Not())
}

func TestValue_dominance(t *testing.T) {
	for _, v := range hw.Values() {
		assert.Equal(t, hw.Zero, hw.Zero.And(v), "0 & %v", v)
		assert.Equal(t, hw.One, hw.One.Or(v), "1 | %v", v)
		assert.Equal(t, hw.Unknown, v.Xor(hw.Unknown), "%v ^ X", v)
		assert.Equal(t, hw.Unknown, v.Xor(hw.Floating), "%v ^ Z", v)
	}
	assert.Equal(t, hw.Unknown, hw.One.And(hw.Floating))
	assert.Equal(t, hw.Unknown, hw.Zero.Or(hw.Unknown))
	assert.Equal(t, hw.Unknown, hw.Floating.And(hw.Floating))
}

func TestValue_commutative(t *testing.T) {
	ops := map[string]func(a, b hw.Value) hw.Value{
		"and":  hw.Value.And,
		"or":   hw.Value.Or,
		"xor":  hw.Value.Xor,
		"nand": hw.Value.Nand,
		"nor":  hw.Value.Nor,
		"xnor": hw.Value.Xnor,
	}
	for name, op := range ops {
		f := func(x, y uint8) bool {
			a, b := val(x), val(y)
			return op(a, b) == op(b, a)
		}
		if err := quick.Check(f, nil); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestValue_boolean(t *testing.T) {
	// restricted to defined values, the algebra is plain boolean logic.
	f := func(x, y bool) bool {
		a, b := hw.FromBool(x), hw.FromBool(y)
		return a.And(b) == hw.FromBool(x && y) &&
			a.Or(b) == hw.FromBool(x || y) &&
			a.Xor(b) == hw.FromBool(x != y) &&
			a.Nand(b) == hw.FromBool(!(x && y)) &&
			a.Not() == hw.FromBool(!x)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestValue_string(t *testing.T) {
	assert.Equal(t, "01XZ", hw.Zero.String()+hw.One.String()+hw.Unknown.String()+hw.Floating.String())
	for i, c := range []byte("01xXuUzZ") {
		v, err := hw.ParseValue(c)
		require.NoError(t, err)
		assert.Equal(t, []hw.Value{hw.Zero, hw.One, hw.Unknown, hw.Unknown, hw.Unknown, hw.Unknown, hw.Floating, hw.Floating}[i], v)
	}
	for _, v := range hw.Values() {
		w, err := hw.ParseValue(v.Byte())
		require.NoError(t, err)
		assert.Equal(t, v, w)
	}
	_, err := hw.ParseValue('2')
	assert.Error(t, err)

	b, ok := hw.One.Bool()
	assert.True(t, b && ok)
	_, ok = hw.Floating.Bool()
	assert.False(t, ok)
	assert.True(t, hw.Zero.IsDefined())
	assert.False(t, hw.Unknown.IsDefined())
}

func TestVector(t *testing.T) {
	v := hw.VectorOf(8, 0xa5)
	assert.Equal(t, "10100101", v.String())
	assert.Equal(t, hw.One, v.Get(0))
	assert.Equal(t, hw.Zero, v.Get(1))
	u, ok := v.Uint()
	assert.True(t, ok)
	assert.Equal(t, uint64(0xa5), u)

	w, err := hw.ParseVector("1010_0101")
	require.NoError(t, err)
	assert.True(t, v.Equal(w))

	x, err := hw.ParseVector("1XZ0")
	require.NoError(t, err)
	assert.Equal(t, hw.Vector{hw.Zero, hw.Floating, hw.Unknown, hw.One}, x)
	_, ok = x.Uint()
	assert.False(t, ok)
	assert.Equal(t, "0XX1", x.Not().String())

	_, err = hw.ParseVector("10a")
	assert.Error(t, err)

	assert.Panics(t, func() { v.Get(8) })
	assert.Panics(t, func() { v.Set(-1, hw.One) })
	assert.False(t, v.Equal(hw.VectorOf(4, 5)))
	assert.Equal(t, 3, hw.NewVector(3, hw.Floating).Width())
}

func TestVector_roundTrip(t *testing.T) {
	f := func(u uint32) bool {
		r, ok := hw.VectorOf(32, uint64(u)).Uint()
		return ok && r == uint64(u)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
