// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/hwgen"

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
// An undefined sel yields a if a == b, Unknown otherwise.
//
func Mux(w string) hwgen.Part { return mux.NewPart(w) }

var mux = hwgen.PartSpec{
	Name:    "MUX",
	Inputs:  []string{pA, pB, pSel},
	Outputs: []string{pOut},
	Mount: func(s *hwgen.Socket) []hwgen.Component {
		a, b, sel, out := s.Pin(pA), s.Pin(pB), s.Pin(pSel), s.Pin(pOut)
		return []hwgen.Component{func(c *hwgen.Circuit) {
			c.Set(out, muxValue(c.Get(sel), c.Get(a), c.Get(b)))
		}}
	},
}

func muxValue(sel, a, b hwgen.Value) hwgen.Value {
	switch sel {
	case hwgen.Zero:
		return a
	case hwgen.One:
		return b
	}
	if a == b && a.IsDefined() {
		return a
	}
	return hwgen.Unknown
}
