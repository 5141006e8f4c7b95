// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hw "github.com/db47h/hwgen"
)

func TestParseAttrs(t *testing.T) {
	a, err := hw.ParseAttrs([]string{"rows=4", " activeLow = true", "label=leds", "n=-2"})
	require.NoError(t, err)
	assert.Equal(t, hw.Attrs{"rows": 4, "activeLow": true, "label": "leds", "n": -2}, a)
	assert.Equal(t, []string{"activeLow", "label", "n", "rows"}, a.Keys())

	for _, kv := range []string{"rows", "=4", ""} {
		_, err := hw.ParseAttrs([]string{kv})
		assert.Error(t, err, kv)
	}
}

func TestAttrs_accessors(t *testing.T) {
	a := hw.Attrs{"i": 3, "j": int64(5), "b": false, "s": "x"}
	n, ok := a.Int("j")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	_, ok = a.Int("s")
	assert.False(t, ok)
	_, ok = a.Bool("i")
	assert.False(t, ok)
	s, ok := a.String("s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	assert.True(t, hw.BoolOr(a, "missing", true))
	assert.False(t, hw.BoolOr(a, "b", true))
}

func TestPositiveInt(t *testing.T) {
	td := []struct {
		a   hw.Attrs
		n   int
		err string
	}{
		{hw.Attrs{"rows": 2}, 2, ""},
		{hw.Attrs{}, 0, `chip: attribute "rows": missing integer attribute`},
		{hw.Attrs{"rows": "2"}, 0, `chip: attribute "rows": missing integer attribute`},
		{hw.Attrs{"rows": -1}, 0, `chip: attribute "rows" = -1: must be a positive integer`},
	}
	for _, d := range td {
		n, err := hw.PositiveInt(d.a, "chip", "rows")
		if d.err != "" {
			assert.EqualError(t, err, d.err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, d.n, n)
	}
}

func TestFingerprint(t *testing.T) {
	a := hw.Attrs{"rows": 2, "columns": 3, "activeLow": true, "name": "a b"}
	b := hw.Attrs{"name": "a b", "activeLow": true, "columns": 3, "rows": 2}
	assert.Equal(t, `activeLow=true,columns=3,name="a b",rows=2`, hw.Fingerprint(a))
	assert.Equal(t, hw.Fingerprint(a), hw.Fingerprint(b))
	assert.NotEqual(t, hw.Fingerprint(a), hw.Fingerprint(hw.Attrs{"rows": 2}))
	assert.Equal(t, "", hw.Fingerprint(hw.Attrs{}))
}

func TestSignals(t *testing.T) {
	s, err := hw.Signals{}.Add("clock", 1)
	require.NoError(t, err)
	s, err = s.AddBus("addr", 1)
	require.NoError(t, err)
	s = s.MustAdd("rows", 4)
	assert.Equal(t, []string{"clock", "addr", "rows"}, s.Names())
	assert.Equal(t, 6, s.Bits())

	sig, ok := s.Get("addr")
	assert.True(t, ok)
	assert.Equal(t, hw.Signal{Name: "addr", Width: 1, Bus: true}, sig)
	w, ok := s.Lookup("rows")
	assert.True(t, ok)
	assert.Equal(t, 4, w)
	_, ok = s.Lookup("nope")
	assert.False(t, ok)

	r, err := s.Add("clock", 2)
	assert.Error(t, err)
	assert.Len(t, r, 3)
	_, err = s.Add("zero", 0)
	assert.Error(t, err)
	assert.Panics(t, func() { s.MustAdd("neg", -1) })

	assert.Equal(t, "in[3]", hw.BusPinName("in", 3))
}

func TestParseDialect(t *testing.T) {
	td := []struct {
		s   string
		d   hw.Dialect
		ext string
	}{
		{"vhdl", hw.VHDL, "vhd"},
		{" VHD ", hw.VHDL, "vhd"},
		{"Verilog", hw.Verilog, "v"},
		{"v", hw.Verilog, "v"},
	}
	for _, d := range td {
		dd, err := hw.ParseDialect(d.s)
		require.NoError(t, err, d.s)
		assert.Equal(t, d.d, dd)
		assert.Equal(t, d.ext, dd.Ext())
	}
	_, err := hw.ParseDialect("systemc")
	assert.Error(t, err)
	assert.Equal(t, []hw.Dialect{hw.VHDL, hw.Verilog}, hw.Dialects())
	assert.Equal(t, "Verilog", hw.Verilog.String())
}
