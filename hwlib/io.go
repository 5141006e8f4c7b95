// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwgen"
)

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() hwgen.Value) hwgen.NewPartFn {
	p := &hwgen.PartSpec{
		Name:    "Input",
		Inputs:  nil,
		Outputs: []string{pOut},
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			pin := s.Pin(pOut)
			return []hwgen.Component{
				func(c *hwgen.Circuit) {
					c.Set(pin, f())
				},
			}
		},
	}
	return p.NewPart
}

// Output creates an output or probe. The fn function is
// called with the named pin state on every circuit update.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(hwgen.Value)) hwgen.NewPartFn {
	p := &hwgen.PartSpec{
		Name:    "Output",
		Inputs:  []string{pIn},
		Outputs: nil,
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			in := s.Pin(pIn)
			return []hwgen.Component{
				func(c *hwgen.Circuit) { f(c.Get(in)) },
			}
		},
	}
	return p.NewPart
}

// InputN creates an input bus of the given bits size. f must return a vector
// of exactly bits values.
//
//	Outputs: out[bits]
//	Function: out = f()
//
func InputN(bits int, f func() hwgen.Vector) hwgen.NewPartFn {
	return (&hwgen.PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Inputs:  nil,
		Outputs: bus(bits, pOut),
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			pins := s.Bus(pOut, bits)
			return []hwgen.Component{func(c *hwgen.Circuit) {
				c.SetBus(pins, f())
			}}
		}}).NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(hwgen.Vector)) hwgen.NewPartFn {
	return (&hwgen.PartSpec{
		Name:    "OUTPUTBUS" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: nil,
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			pins := s.Bus(pIn, bits)
			return []hwgen.Component{func(c *hwgen.Circuit) {
				f(c.GetBus(pins))
			}}
		}}).NewPart
}
