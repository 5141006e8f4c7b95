// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides the component families of hwgen: simulation parts and
// HDL generators for logic gates, column scanning LED arrays and TTL gate
// packages.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/hwgen"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = n + "[" + strconv.Itoa(j) + "]"
		}
	}
	return b
}

var notGate = hwgen.PartSpec{Name: "NOT", Inputs: []string{pIn}, Outputs: []string{pOut},
	Mount: func(s *hwgen.Socket) []hwgen.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []hwgen.Component{
			func(c *hwgen.Circuit) { c.Set(out, c.Get(in).Not()) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) hwgen.Part {
	return notGate.NewPart(w)
}

// other gates
type gate func(a, b hwgen.Value) hwgen.Value

func (g gate) mount(s *hwgen.Socket) []hwgen.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []hwgen.Component{
		func(c *hwgen.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn func(a, b hwgen.Value) hwgen.Value) *hwgen.PartSpec {
	return &hwgen.PartSpec{
		Name:    name,
		Inputs:  gateIn,
		Outputs: gateOut,
		Mount:   gate(fn).mount,
	}
}

var (
	gateIn  = []string{pA, pB}
	gateOut = []string{pOut}

	and  = newGate("AND", hwgen.Value.And)
	nand = newGate("NAND", hwgen.Value.Nand)
	or   = newGate("OR", hwgen.Value.Or)
	nor  = newGate("NOR", hwgen.Value.Nor)
	xor  = newGate("XOR", hwgen.Value.Xor)
	xnor = newGate("XNOR", hwgen.Value.Xnor)
)

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) hwgen.Part { return and.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) hwgen.Part { return nand.NewPart(w) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) hwgen.Part { return or.NewPart(w) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(w string) hwgen.Part { return nor.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
func Xor(w string) hwgen.Part { return xor.NewPart(w) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor(w string) hwgen.Part { return xnor.NewPart(w) }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) hwgen.NewPartFn {
	return (&hwgen.PartSpec{
		Name:    "NOT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			ins := s.Bus(pIn, bits)
			outs := s.Bus(pOut, bits)
			return []hwgen.Component{func(c *hwgen.Circuit) {
				for i, pin := range ins {
					c.Set(outs[i], c.Get(pin).Not())
				}
			}}
		}}).NewPart
}
