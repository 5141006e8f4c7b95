// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"github.com/pkg/errors"
)

// Constant input pin names.
//
var (
	True  = "true"
	False = "false"
	GND   = "false"
	Clk   = "clk"
)

const (
	cstFalse = iota
	cstTrue
	cstFloat
	cstClk
	cstCount
)

// A Socket maps a part's pin names to pin numbers in a circuit.
//
type Socket struct {
	m map[string]int
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{
		m: map[string]int{False: cstFalse, True: cstTrue, Clk: cstClk},
		c: c,
	}
}

// wire returns a sub-socket for part p, allocating circuit wires for the
// actual signal names of its connections. drivers tracks which part drives
// each wire.
//
func (s *Socket) wire(p Part, drivers map[int]string) (*Socket, error) {
	sub := &Socket{m: make(map[string]int, len(p.Inputs)+len(p.Outputs)), c: s.c}
	isOut := make(map[string]bool, len(p.Outputs))
	pins := make(map[string]bool, len(p.Inputs)+len(p.Outputs))
	for _, o := range p.Outputs {
		isOut[o] = true
		pins[o] = true
	}
	for _, i := range p.Inputs {
		pins[i] = true
	}

	for _, cn := range p.Conns {
		formals, actuals, err := expandConnection(cn, pins)
		if err != nil {
			return nil, errors.Wrapf(err, "part %s", p.Name)
		}
		for i, f := range formals {
			a := actuals[i]
			if isOut[f] {
				if a == True || a == False || a == Clk {
					return nil, errors.Errorf("part %s: output pin %s connected to constant %q", p.Name, f, a)
				}
				n := s.PinOrNew(a)
				if d, ok := drivers[n]; ok {
					return nil, errors.Errorf("part %s: wire %s already driven by %s", p.Name, a, d)
				}
				drivers[n] = p.Name + "." + f
				sub.m[f] = n
			} else {
				sub.m[f] = s.PinOrNew(a)
			}
		}
	}

	// unconnected inputs float, unconnected outputs get their own wire.
	for _, i := range p.Inputs {
		if _, ok := sub.m[i]; !ok {
			sub.m[i] = cstFloat
		}
	}
	for _, o := range p.Outputs {
		if _, ok := sub.m[o]; !ok {
			sub.m[o] = s.c.allocPin()
		}
	}
	return sub, nil
}

// Pin returns the pin number allocated to the given pin name.
// This function panics if the pin does not exist.
//
func (s *Socket) Pin(name string) int {
	n, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return n
}

// PinOrNew returns the pin number allocated to the given pin name.
// If no such pin exists a new one is allocated.
//
func (s *Socket) PinOrNew(name string) int {
	n, ok := s.m[name]
	if !ok {
		n = s.c.allocPin()
		s.m[name] = n
	}
	return n
}

// Bus returns the pin numbers allocated to the given bus name.
// This function panics if any pin of the bus does not exist.
//
func (s *Socket) Bus(name string, size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = s.Pin(BusPinName(name, i))
	}
	return out
}
