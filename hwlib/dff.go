// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
)

const pLoad = "load"

// latch returns the value a register holds after a rising edge given its
// current value, the value on its input and the load signal.
//
// A load that is neither One nor Zero leaves the register Unknown unless the
// input already matches the stored value.
//
func latch(cur, in, load hwgen.Value) hwgen.Value {
	switch load {
	case hwgen.One:
		if in == hwgen.Floating {
			return hwgen.Unknown
		}
		return in
	case hwgen.Zero:
		return cur
	}
	if in == cur && in.IsDefined() {
		return cur
	}
	return hwgen.Unknown
}

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
// The flip flop powers up Unknown. A Floating input latches as Unknown.
//
func DFF(w string) hwgen.Part {
	return (&hwgen.PartSpec{
		Name:    "DFF",
		Inputs:  []string{pIn},
		Outputs: []string{pOut},
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			in, out := s.Pin(pIn), s.Pin(pOut)
			cur := hwgen.Unknown
			return []hwgen.Component{
				func(c *hwgen.Circuit) {
					if c.AtTick() {
						cur = latch(cur, c.Get(in), hwgen.One)
					}
					c.Set(out, cur)
				}}
		}}).NewPart(w)
}

// RegisterN returns a NewPartFn for an n-bit register with load enable.
//
//	Inputs: in[bits], load
//	Outputs: out[bits]
//	Function: if load(t-1) then out(t) = in(t-1) else out(t) = out(t-1)
//
// The register powers up Unknown.
//
func RegisterN(bits int) hwgen.NewPartFn {
	if bits <= 0 {
		panic(errors.Errorf("register width must be positive, got %d", bits))
	}
	return (&hwgen.PartSpec{
		Name:    "REGISTER",
		Inputs:  append(bus(bits, pIn), pLoad),
		Outputs: bus(bits, pOut),
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			in, load, out := s.Bus(pIn, bits), s.Pin(pLoad), s.Bus(pOut, bits)
			cur := hwgen.NewVector(bits, hwgen.Unknown)
			return []hwgen.Component{
				func(c *hwgen.Circuit) {
					if c.AtTick() {
						ld := c.Get(load)
						v := c.GetBus(in)
						for i := range cur {
							cur[i] = latch(cur[i], v[i], ld)
						}
					}
					c.SetBus(out, cur)
				}}
		}}).NewPart
}
