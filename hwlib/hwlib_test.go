// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"strings"
	"testing"
	"testing/quick"

	hw "github.com/db47h/hwgen"
	hl "github.com/db47h/hwgen/hwlib"
)

const testTPC = 8

// testGate wires gate to one input per input pin and one output per output
// pin, then checks outputs against result for all binary input combinations.
// inputs are enumerated MSB first: for a, b: 00, 01, 10, 11.
func testGate(t *testing.T, gate hw.NewPartFn, result [][]hw.Value) {
	t.Helper()
	part := gate("").PartSpec // build dummy gate just to get to the partspec
	inputs := make([]hw.Value, len(part.Inputs))
	outputs := make([]hw.Value, len(part.Outputs))
	c := wrap(t, gate, inputs, outputs)
	defer c.Dispose()

	tot := 1 << uint(len(part.Inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = hw.FromBool((i & (1 << uint(bit))) != 0)
		}
		c.TickTock()
		for o, out := range outputs {
			exp := result[o][i]
			if exp != out {
				t.Errorf("%s %v = %v, got %v", part.Name, inputs, exp, out)
			}
		}
	}
}

// wrap builds a circuit around gate. Pin i of the gate reads inputs[i] and
// outputs[i] is updated with output pin i at every step.
func wrap(t *testing.T, gate hw.NewPartFn, inputs, outputs []hw.Value) *hw.Circuit {
	t.Helper()
	part := gate("").PartSpec
	var w strings.Builder
	parts := make(hw.Parts, 0, len(part.Inputs)+len(part.Outputs)+1)
	for i, n := range part.Inputs {
		w.WriteByte(',')
		w.WriteString(n)
		w.WriteByte('=')
		w.WriteString(n)
		in := &inputs[i]
		parts = append(parts, hl.Input(func() hw.Value { return *in })("out="+n))
	}
	for i, n := range part.Outputs {
		w.WriteByte(',')
		w.WriteString(n)
		w.WriteByte('=')
		w.WriteString(n)
		out := &outputs[i]
		parts = append(parts, hl.Output(func(v hw.Value) { *out = v })("in="+n))
	}
	wr := w.String()
	// trim first ','
	if len(wr) > 0 {
		wr = wr[1:]
	}
	parts = append(parts, gate(wr))
	c, err := hw.NewCircuit(0, testTPC, parts)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

var (
	F = hw.Zero
	T = hw.One
)

func Test_gate_builtin(t *testing.T) {
	tr := (&hw.PartSpec{
		Name:    "TRUE",
		Inputs:  []string{"a"},
		Outputs: []string{"out"},
		Mount: func(s *hw.Socket) []hw.Component {
			out := s.Pin("out")
			return []hw.Component{func(c *hw.Circuit) { c.Set(out, hw.One) }}
		}}).NewPart
	td := []struct {
		name   string
		gate   hw.NewPartFn
		result [][]hw.Value // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", hl.Not, [][]hw.Value{{T, F}}},
		{"AND", hl.And, [][]hw.Value{{F, F, F, T}}},
		{"NAND", hl.Nand, [][]hw.Value{{T, T, T, F}}},
		{"OR", hl.Or, [][]hw.Value{{F, T, T, T}}},
		{"NOR", hl.Nor, [][]hw.Value{{T, F, F, F}}},
		{"XOR", hl.Xor, [][]hw.Value{{F, T, T, F}}},
		{"XNOR", hl.Xnor, [][]hw.Value{{T, F, F, T}}},
		{"TRUE", tr, [][]hw.Value{{T, T}}},
		{"MUX", hl.Mux, [][]hw.Value{{F, F, F, T, T, F, T, T}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.gate, d.result)
		})
	}
}

func Test_gate_fourValued(t *testing.T) {
	td := []struct {
		name string
		gate hw.NewPartFn
		fn   func(a, b hw.Value) hw.Value
	}{
		{"AND", hl.And, hw.Value.And},
		{"NAND", hl.Nand, hw.Value.Nand},
		{"OR", hl.Or, hw.Value.Or},
		{"NOR", hl.Nor, hw.Value.Nor},
		{"XOR", hl.Xor, hw.Value.Xor},
		{"XNOR", hl.Xnor, hw.Value.Xnor},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			in := make([]hw.Value, 2)
			out := make([]hw.Value, 1)
			c := wrap(t, d.gate, in, out)
			defer c.Dispose()
			for _, a := range hw.Values() {
				for _, b := range hw.Values() {
					in[0], in[1] = a, b
					c.TickTock()
					if exp := d.fn(a, b); out[0] != exp {
						t.Errorf("%s(%v, %v) = %v, got %v", d.name, a, b, exp, out[0])
					}
				}
			}
		})
	}
}

func Test_unconnectedInputFloats(t *testing.T) {
	var out hw.Value
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Not("out=x"),
		hl.Output(func(v hw.Value) { out = v })("in=x"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	c.TickTock()
	if out != hw.Unknown {
		t.Fatalf("NOT(floating) = %v, expected %v", out, hw.Unknown)
	}
}

func TestInput16(t *testing.T) {
	in := hw.VectorOf(16, 0)
	var out hw.Vector
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.InputN(16, func() hw.Vector { return in })("out[0..15]= t[0..15]"),
		hl.OutputN(16, func(v hw.Vector) { out = v })("in[0..15] = t[0..15]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = hw.VectorOf(16, 0x80a2)
	c.TickTock()
	if !out.Equal(in) {
		t.Fatalf("Expected %v, got %v", in, out)
	}
}

func TestNotN(t *testing.T) {
	var a uint16
	var out hw.Vector

	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.InputN(16, func() hw.Vector { return hw.VectorOf(16, uint64(a)) })("out=a"),
		hl.NotN(16)("in=a, out=out"),
		hl.OutputN(16, func(v hw.Vector) { out = v })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	f := func(x uint16) bool {
		a = x
		c.TickTock()
		u, ok := out.Uint()
		return ok && uint16(u) == ^x
	}
	if err = quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
