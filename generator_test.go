// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hw "github.com/db47h/hwgen"
)

// buffer is a single bit buffer of configurable input name.
type buffer struct {
	in string
}

func (g buffer) ID() string   { return "buf" }
func (g buffer) Name() string { return "BUF" }

func (g buffer) Inputs(a hw.Attributes) (hw.Signals, error) {
	return hw.Signals{}.Add(g.in, 1)
}

func (g buffer) Outputs(a hw.Attributes) (hw.Signals, error) {
	w, err := hw.PositiveInt(a, g.ID(), "width")
	if err != nil {
		return nil, err
	}
	return hw.Signals{}.Add("out", w)
}

func (g buffer) Wires(a hw.Attributes) (hw.Signals, error) { return nil, nil }

func (g buffer) body(d hw.Dialect) ([]string, error) {
	return hw.NewBuffer(d).Add("{{assign}}out{{=}}{{1}};", g.in).Emit(hw.BodyIndent)
}

func (g buffer) VHDL(a hw.Attributes) ([]string, error)    { return g.body(hw.VHDL) }
func (g buffer) Verilog(a hw.Attributes) ([]string, error) { return g.body(hw.Verilog) }

func (g buffer) Connections(a hw.Attributes, id int) ([]hw.Connection, error) {
	return []hw.Connection{
		{Formal: g.in, Actual: hw.NetName(g.in, id)},
		{Formal: "out", Actual: hw.NetName("out", id)},
	}, nil
}

func TestModuleBody(t *testing.T) {
	g := buffer{"in"}
	b, err := hw.ModuleBody(g, hw.Attrs{}, hw.VHDL)
	require.NoError(t, err)
	assert.Equal(t, []string{"   out <= in;"}, b)
	b, err = hw.ModuleBody(g, hw.Attrs{}, hw.Verilog)
	require.NoError(t, err)
	assert.Equal(t, []string{"   assign out = in;"}, b)

	_, err = hw.ModuleBody(g, hw.Attrs{}, hw.Dialect(42))
	var de *hw.UnsupportedDialectError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, hw.Dialect(42), de.Dialect)
	assert.Equal(t, "unsupported HDL dialect Dialect(42)", err.Error())
}

func TestPortMap(t *testing.T) {
	g := buffer{"input"}
	pm, err := hw.PortMap(g, hw.Attrs{}, 2, hw.VHDL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"      PORT MAP ( input => s_input2,",
		"                 out   => s_out2 );",
	}, pm)
	pm, err = hw.PortMap(g, hw.Attrs{}, 2, hw.Verilog)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"      ( .input(s_input2),",
		"        .out  (s_out2) );",
	}, pm)

	_, err = hw.PortMap(g, hw.Attrs{}, 0, hw.Dialect(-1))
	var de *hw.UnsupportedDialectError
	assert.True(t, errors.As(err, &de))
}

func TestRenderPortMap(t *testing.T) {
	pm, err := hw.RenderPortMap(nil, hw.VHDL)
	require.NoError(t, err)
	assert.Empty(t, pm)

	pm, err = hw.RenderPortMap([]hw.Connection{{Formal: "a", Actual: "b"}}, hw.Verilog)
	require.NoError(t, err)
	assert.Equal(t, []string{"      ( .a(b) );"}, pm)
}

func TestNewBuffer(t *testing.T) {
	const tmpl = "{{assign}}y{{=}}{{not}}(a{{and}}b){{or}}(c{{xor}}{{zero}}){{or}}{{one}};"
	td := []struct {
		d   hw.Dialect
		exp string
	}{
		{hw.VHDL, "y <= NOT(a AND b) OR (c XOR '0') OR '1';"},
		{hw.Verilog, "assign y = ~(a & b) | (c ^ 1'b0) | 1'b1;"},
	}
	for _, d := range td {
		t.Run(d.d.String(), func(t *testing.T) {
			l, err := hw.NewBuffer(d.d).Add(tmpl).Emit(0)
			require.NoError(t, err)
			assert.Equal(t, []string{d.exp}, l)
		})
	}
}

func TestNetName(t *testing.T) {
	assert.Equal(t, "s_gateA012", hw.NetName("gateA0", 12))
	assert.Equal(t, "s_clock0", hw.NetName("clock", 0))
}

func TestInterface(t *testing.T) {
	ins, outs, err := hw.Interface(buffer{"in"}, hw.Attrs{"width": 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"in"}, ins.Names())
	assert.Equal(t, 3, outs.Bits())

	_, _, err = hw.Interface(buffer{"out"}, hw.Attrs{"width": 1})
	var ce *hw.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "buf", ce.Component)
	assert.Equal(t, "out", ce.Attribute)

	_, _, err = hw.Interface(buffer{"in"}, hw.Attrs{"width": 0})
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, `buf: attribute "width" = 0: must be a positive integer`, err.Error())
}

// wideBuffer is a buffer with a default width.
type wideBuffer struct {
	buffer
}

func (wideBuffer) Defaults() hw.Attrs { return hw.Attrs{"width": 8, "inverted": false} }

func TestWithDefaults(t *testing.T) {
	td := []struct {
		name string
		g    hw.Generator
		a    hw.Attrs
		exp  hw.Attrs
	}{
		{"none", buffer{"in"}, hw.Attrs{"width": 2}, hw.Attrs{"width": 2}},
		{"filled", wideBuffer{buffer{"in"}}, hw.Attrs{}, hw.Attrs{"width": 8, "inverted": false}},
		{"override", wideBuffer{buffer{"in"}}, hw.Attrs{"width": 4, "label": "x"}, hw.Attrs{"width": 4, "inverted": false, "label": "x"}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			assert.Equal(t, d.exp, hw.WithDefaults(d.g, d.a))
		})
	}
	// explicit defaults and omitted ones fingerprint the same
	g := wideBuffer{buffer{"in"}}
	assert.Equal(t,
		hw.Fingerprint(hw.WithDefaults(g, hw.Attrs{})),
		hw.Fingerprint(hw.WithDefaults(g, hw.Attrs{"width": 8})))
}
