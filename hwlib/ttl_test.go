// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hw "github.com/db47h/hwgen"
	hl "github.com/db47h/hwgen/hwlib"
)

func TestTTL747266_truth(t *testing.T) {
	X := hw.Unknown
	td := []struct {
		a, b, out hw.Value
	}{
		{T, T, T},
		{T, F, F},
		{F, T, F},
		{F, F, T},
		{X, F, X},
		{hw.Floating, T, X},
	}
	chip := hl.TTL747266
	for _, d := range td {
		ports := hl.PortVector(hw.NewVector(chip.Ports(), hw.Zero))
		for g := 0; g < chip.Gates(); g++ {
			l := chip.Layout(g)
			ports.SetPort(l.In[0], d.a, 0)
			ports.SetPort(l.In[1], d.b, 0)
		}
		chip.Propagate(ports)
		for g := 0; g < chip.Gates(); g++ {
			l := chip.Layout(g)
			assert.Equal(t, d.out, ports.Port(l.Out), "XNOR(%v, %v) gate %d", d.a, d.b, g)
		}
	}
}

func TestTTL747266_outputPorts(t *testing.T) {
	for g, p := range []int{2, 5, 6, 9} {
		assert.Equal(t, p, hl.TTL747266.Layout(g).Out)
		assert.True(t, hl.TTL747266.IsOutput(p))
	}
}

// flipping the inputs of one gate must not alter the other gates.
func TestTTL_gateIndependence(t *testing.T) {
	for _, chip := range allTTL() {
		t.Run(chip.ID(), func(t *testing.T) {
			ports := hl.PortVector(hw.NewVector(chip.Ports(), hw.Zero))
			chip.Propagate(ports)
			ref := hw.Vector(ports)
			for g := 0; g < chip.Gates(); g++ {
				l := chip.Layout(g)
				p := hl.PortVector(hw.NewVector(chip.Ports(), hw.Zero))
				for _, in := range l.In {
					p.SetPort(in, hw.One, 0)
				}
				chip.Propagate(p)
				for o := 0; o < chip.Gates(); o++ {
					if o == g {
						continue
					}
					out := chip.Layout(o).Out
					assert.Equal(t, ref.Get(out), p.Port(out), "gate %d changed when flipping gate %d", o, g)
				}
			}
		})
	}
}

func allTTL() []*hl.TTL {
	return []*hl.TTL{hl.TTL7400, hl.TTL7402, hl.TTL7404, hl.TTL7408, hl.TTL7432, hl.TTL7486, hl.TTL747266}
}

func TestTTL_logic(t *testing.T) {
	td := []struct {
		chip *hl.TTL
		fn   func(a, b hw.Value) hw.Value
	}{
		{hl.TTL7400, hw.Value.Nand},
		{hl.TTL7402, hw.Value.Nor},
		{hl.TTL7404, func(a, _ hw.Value) hw.Value { return a.Not() }},
		{hl.TTL7408, hw.Value.And},
		{hl.TTL7432, hw.Value.Or},
		{hl.TTL7486, hw.Value.Xor},
		{hl.TTL747266, hw.Value.Xnor},
	}
	for _, d := range td {
		t.Run(d.chip.ID(), func(t *testing.T) {
			for _, a := range hw.Values() {
				for _, b := range hw.Values() {
					in := []hw.Value{a, b}[:d.chip.Logic().Arity()]
					assert.Equal(t, d.fn(a, b), d.chip.Logic().Eval(in), "%v %v", a, b)
				}
			}
		})
	}
}

// simulating the package in a circuit matches the logic function.
func TestTTLPart(t *testing.T) {
	for _, chip := range allTTL() {
		t.Run(chip.ID(), func(t *testing.T) {
			part := chip.Part()
			spec := part("").PartSpec
			inputs := make([]hw.Value, len(spec.Inputs))
			outputs := make([]hw.Value, len(spec.Outputs))
			c := wrap(t, part, inputs, outputs)
			defer c.Dispose()
			for _, a := range hw.Values() {
				for _, b := range hw.Values() {
					for i := range inputs {
						inputs[i] = a
						if i&1 == 1 {
							inputs[i] = b
						}
					}
					c.TickTock()
					// expected values from the same inputs on a port vector
					ports := hl.PortVector(hw.NewVector(chip.Ports(), hw.Zero))
					for i, n := range spec.Inputs {
						ports.SetPort(portIndex(n), inputs[i], 0)
					}
					chip.Propagate(ports)
					for i, n := range spec.Outputs {
						assert.Equal(t, ports.Port(portIndex(n)), outputs[i], "%s %s", chip.ID(), n)
					}
				}
			}
		})
	}
}

func portIndex(pin string) int {
	n := 0
	for _, c := range pin[1:] {
		n = n*10 + int(c-'0')
	}
	return n
}

func TestTTL_signals(t *testing.T) {
	ins, outs, err := hw.Interface(hl.TTL747266, hw.Attrs{})
	require.NoError(t, err)
	assert.Equal(t, []string{"gateA0", "gateB0", "gateA1", "gateB1", "gateA2", "gateB2", "gateA3", "gateB3"}, ins.Names())
	assert.Equal(t, []string{"gateO0", "gateO1", "gateO2", "gateO3"}, outs.Names())
	assert.Equal(t, 8, ins.Bits())
	wires, err := hl.TTL747266.Wires(hw.Attrs{})
	require.NoError(t, err)
	assert.Empty(t, wires)

	ins, outs, err = hw.Interface(hl.TTL7404, hw.Attrs{})
	require.NoError(t, err)
	assert.Len(t, ins, 6)
	assert.Len(t, outs, 6)
	assert.Equal(t, "gateA5", ins[5].Name)
}

func TestTTL747266_body(t *testing.T) {
	vhdl, err := hw.ModuleBody(hl.TTL747266, hw.Attrs{}, hw.VHDL)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"   gateO0 <= NOT(gateA0 XOR gateB0);",
		"   gateO1 <= NOT(gateA1 XOR gateB1);",
		"   gateO2 <= NOT(gateA2 XOR gateB2);",
		"   gateO3 <= NOT(gateA3 XOR gateB3);",
	}, vhdl)

	v, err := hw.ModuleBody(hl.TTL747266, hw.Attrs{}, hw.Verilog)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"   assign gateO0 = ~(gateA0 ^ gateB0);",
		"   assign gateO1 = ~(gateA1 ^ gateB1);",
		"   assign gateO2 = ~(gateA2 ^ gateB2);",
		"   assign gateO3 = ~(gateA3 ^ gateB3);",
	}, v)

	_, err = hw.ModuleBody(hl.TTL747266, hw.Attrs{}, hw.Dialect(7))
	var de *hw.UnsupportedDialectError
	assert.True(t, errors.As(err, &de))
}

func TestTTL_bodies(t *testing.T) {
	td := []struct {
		chip          *hl.TTL
		vhdl, verilog string
	}{
		{hl.TTL7400, "   gateO0 <= NOT(gateA0 AND gateB0);", "   assign gateO0 = ~(gateA0 & gateB0);"},
		{hl.TTL7402, "   gateO0 <= NOT(gateA0 OR gateB0);", "   assign gateO0 = ~(gateA0 | gateB0);"},
		{hl.TTL7404, "   gateO0 <= NOT(gateA0);", "   assign gateO0 = ~(gateA0);"},
		{hl.TTL7408, "   gateO0 <= gateA0 AND gateB0;", "   assign gateO0 = gateA0 & gateB0;"},
		{hl.TTL7432, "   gateO0 <= gateA0 OR gateB0;", "   assign gateO0 = gateA0 | gateB0;"},
		{hl.TTL7486, "   gateO0 <= gateA0 XOR gateB0;", "   assign gateO0 = gateA0 ^ gateB0;"},
	}
	for _, d := range td {
		t.Run(d.chip.ID(), func(t *testing.T) {
			vhdl, err := hw.ModuleBody(d.chip, hw.Attrs{}, hw.VHDL)
			require.NoError(t, err)
			assert.Equal(t, d.vhdl, vhdl[0])
			v, err := hw.ModuleBody(d.chip, hw.Attrs{}, hw.Verilog)
			require.NoError(t, err)
			assert.Equal(t, d.verilog, v[0])
			assert.Len(t, v, d.chip.Gates())
		})
	}
}

func TestTTL_portMap(t *testing.T) {
	pm, err := hw.PortMap(hl.TTL7404, hw.Attrs{}, 3, hw.VHDL)
	require.NoError(t, err)
	require.Len(t, pm, 12)
	assert.Equal(t, "      PORT MAP ( gateA0 => s_gateA03,", pm[0])
	assert.Equal(t, "                 gateO5 => s_gateO53 );", pm[11])

	pm, err = hw.PortMap(hl.TTL7404, hw.Attrs{}, 3, hw.Verilog)
	require.NoError(t, err)
	assert.Equal(t, "      ( .gateA0(s_gateA03),", pm[0])
	assert.Equal(t, "        .gateO5(s_gateO53) );", pm[11])
}

func TestPortVector_invalidPort(t *testing.T) {
	p := hl.PortVector(hw.NewVector(12, hw.Zero))
	assert.Panics(t, func() { p.Port(12) })
	assert.Panics(t, func() { p.SetPort(-1, hw.One, 1) })
}

func TestNewTTL_badLayout(t *testing.T) {
	assert.Panics(t, func() {
		hl.NewTTL("bad", "", 14, hl.AndOf(hl.In(0), hl.In(1)), hl.GateLayout{In: []int{0}, Out: 1})
	})
	assert.Panics(t, func() {
		hl.NewTTL("bad", "", 14, hl.NotOf(hl.In(0)), hl.GateLayout{In: []int{0}, Out: 0})
	})
	assert.Panics(t, func() {
		hl.NewTTL("bad", "", 14, hl.NotOf(hl.In(0)), hl.GateLayout{In: []int{12}, Out: 0})
	})
}
