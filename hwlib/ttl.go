// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
)

// TTLDelay is the propagation delay of TTL gates, in simulation steps.
//
const TTLDelay = 1

// A PortState gives access to the ports of a component instance during
// simulation. Ports are numbered from 0, power pins excluded.
//
// Implementations panic on invalid port indices.
//
type PortState interface {
	Port(i int) hwgen.Value
	SetPort(i int, v hwgen.Value, delay int)
}

// A GateLayout lists the ports of one gate in a TTL package.
//
type GateLayout struct {
	In  []int // input ports, In[i] feeds In(i) of the logic function
	Out int   // output port
}

// TTL describes a package of identical gates. All gates share the same logic
// function, only their port assignments differ.
//
type TTL struct {
	id     string
	desc   string
	pins   int
	gates  []GateLayout
	logic  Expr
	inputs []bool // port i is a gate input
	isOut  []bool // port i is a gate output
}

// NewTTL returns a new TTL package description. pins is the physical pin
// count, power and ground included.
//
// NewTTL panics if the layout is inconsistent: a port used twice, a port out
// of range or a gate with a number of inputs different from the logic
// function's arity.
//
func NewTTL(id, desc string, pins int, logic Expr, gates ...GateLayout) *TTL {
	ports := pins - 2
	t := &TTL{
		id:     id,
		desc:   desc,
		pins:   pins,
		gates:  gates,
		logic:  logic,
		inputs: make([]bool, ports),
		isOut:  make([]bool, ports),
	}
	use := func(p int) {
		if p < 0 || p >= ports {
			panic(errors.Errorf("TTL %s: port %d out of range", id, p))
		}
		if t.inputs[p] || t.isOut[p] {
			panic(errors.Errorf("TTL %s: port %d used twice", id, p))
		}
	}
	for _, g := range gates {
		if len(g.In) != logic.Arity() {
			panic(errors.Errorf("TTL %s: gate with %d inputs, logic function reads %d", id, len(g.In), logic.Arity()))
		}
		for _, p := range g.In {
			use(p)
			t.inputs[p] = true
		}
		use(g.Out)
		t.isOut[g.Out] = true
	}
	return t
}

// ID implements hwgen.Generator.
func (t *TTL) ID() string { return t.id }

// Name implements hwgen.Generator.
func (t *TTL) Name() string { return "TTL" + t.id }

// Description returns a short description of the package, like "quad 2-input
// XNOR gate".
//
func (t *TTL) Description() string { return t.desc }

// Pins returns the physical pin count.
//
func (t *TTL) Pins() int { return t.pins }

// Ports returns the number of logic ports (pins minus power and ground).
//
func (t *TTL) Ports() int { return t.pins - 2 }

// Gates returns the gate count.
//
func (t *TTL) Gates() int { return len(t.gates) }

// Layout returns the layout of gate i.
//
func (t *TTL) Layout(i int) GateLayout { return t.gates[i] }

// Logic returns the logic function shared by all gates.
//
func (t *TTL) Logic() Expr { return t.logic }

// IsOutput returns true if port p is a gate output.
//
func (t *TTL) IsOutput(p int) bool { return t.isOut[p] }

// Propagate reads the input ports of every gate, applies the logic function
// and writes the output ports with TTLDelay.
//
func (t *TTL) Propagate(s PortState) {
	var buf [4]hwgen.Value
	for _, g := range t.gates {
		in := buf[:len(g.In)]
		for i, p := range g.In {
			in[i] = s.Port(p)
		}
		s.SetPort(g.Out, t.logic.Eval(in), TTLDelay)
	}
}

// gate port names in generated HDL
func ttlIn(i, gate int) string {
	return "gate" + string(rune('A'+i)) + strconv.Itoa(gate)
}

func ttlOut(gate int) string {
	return "gateO" + strconv.Itoa(gate)
}

// Inputs implements hwgen.Generator. Inputs are gateA<i>, gateB<i>... for
// each gate i.
//
func (t *TTL) Inputs(hwgen.Attributes) (hwgen.Signals, error) {
	var s hwgen.Signals
	for g := range t.gates {
		for i := 0; i < t.logic.Arity(); i++ {
			s = s.MustAdd(ttlIn(i, g), 1)
		}
	}
	return s, nil
}

// Outputs implements hwgen.Generator. Outputs are gateO<i> for each gate i.
//
func (t *TTL) Outputs(hwgen.Attributes) (hwgen.Signals, error) {
	var s hwgen.Signals
	for g := range t.gates {
		s = s.MustAdd(ttlOut(g), 1)
	}
	return s, nil
}

// Wires implements hwgen.Generator. TTL gates have no internal wires.
//
func (t *TTL) Wires(hwgen.Attributes) (hwgen.Signals, error) { return nil, nil }

// VHDL implements hwgen.Generator.
func (t *TTL) VHDL(hwgen.Attributes) ([]string, error) { return t.body(hwgen.VHDL) }

// Verilog implements hwgen.Generator.
func (t *TTL) Verilog(hwgen.Attributes) ([]string, error) { return t.body(hwgen.Verilog) }

func (t *TTL) body(d hwgen.Dialect) ([]string, error) {
	b := hwgen.NewBuffer(d)
	operands := make([]string, t.logic.Arity())
	for g := range t.gates {
		for i := range operands {
			operands[i] = ttlIn(i, g)
		}
		f, err := Render(t.logic, d, operands)
		if err != nil {
			return nil, err
		}
		b.Add("{{assign}}gateO{{1}}{{=}}{{2}};", g, f)
	}
	return b.Emit(hwgen.BodyIndent)
}

// Connections implements hwgen.Generator. Each port is connected to the net
// hwgen.NetName(port, id).
//
func (t *TTL) Connections(a hwgen.Attributes, id int) ([]hwgen.Connection, error) {
	ins, outs, err := hwgen.Interface(t, a)
	if err != nil {
		return nil, err
	}
	conns := make([]hwgen.Connection, 0, len(ins)+len(outs))
	for _, s := range append(ins, outs...) {
		conns = append(conns, hwgen.Connection{Formal: s.Name, Actual: hwgen.NetName(s.Name, id)})
	}
	return conns, nil
}

// portName returns the circuit pin name of port p.
func portName(p int) string { return "p" + strconv.Itoa(p) }

// Part returns a NewPartFn for the package. Pins are named p0, p1... after
// the port numbers.
//
func (t *TTL) Part() hwgen.NewPartFn {
	var ins, outs []string
	for p := 0; p < t.Ports(); p++ {
		switch {
		case t.inputs[p]:
			ins = append(ins, portName(p))
		case t.isOut[p]:
			outs = append(outs, portName(p))
		}
	}
	return (&hwgen.PartSpec{
		Name:    t.Name(),
		Inputs:  ins,
		Outputs: outs,
		Mount: func(s *hwgen.Socket) []hwgen.Component {
			pins := make([]int, t.Ports())
			for p := range pins {
				if t.inputs[p] || t.isOut[p] {
					pins[p] = s.Pin(portName(p))
				} else {
					pins[p] = -1
				}
			}
			return []hwgen.Component{func(c *hwgen.Circuit) {
				t.Propagate(&circuitPorts{c, pins})
			}}
		}}).NewPart
}

// circuitPorts adapts a circuit to PortState. One circuit step is one unit of
// delay.
type circuitPorts struct {
	c    *hwgen.Circuit
	pins []int
}

func (p *circuitPorts) pin(i int) int {
	if i < 0 || i >= len(p.pins) || p.pins[i] < 0 {
		panic(errors.Errorf("invalid port %d", i))
	}
	return p.pins[i]
}

func (p *circuitPorts) Port(i int) hwgen.Value { return p.c.Get(p.pin(i)) }

func (p *circuitPorts) SetPort(i int, v hwgen.Value, delay int) {
	if delay != 1 {
		panic(errors.Errorf("unsupported propagation delay %d", delay))
	}
	p.c.Set(p.pin(i), v)
}

// PortVector is a PortState backed by a vector. SetPort writes immediately
// and ignores the delay.
//
type PortVector hwgen.Vector

// Port implements PortState.
func (v PortVector) Port(i int) hwgen.Value { return hwgen.Vector(v).Get(i) }

// SetPort implements PortState.
func (v PortVector) SetPort(i int, x hwgen.Value, _ int) { hwgen.Vector(v).Set(i, x) }

// standard quad 2-input layout: 7400, 7408, 7432, 7486, 747266.
var quad2 = []GateLayout{
	{In: []int{0, 1}, Out: 2},
	{In: []int{3, 4}, Out: 5},
	{In: []int{7, 8}, Out: 6},
	{In: []int{10, 11}, Out: 9},
}

// quad 2-input NOR layout (7402), outputs first.
var quadNor = []GateLayout{
	{In: []int{1, 2}, Out: 0},
	{In: []int{4, 5}, Out: 3},
	{In: []int{6, 7}, Out: 8},
	{In: []int{9, 10}, Out: 11},
}

// hex inverter layout (7404).
var hex1 = []GateLayout{
	{In: []int{0}, Out: 1},
	{In: []int{2}, Out: 3},
	{In: []int{4}, Out: 5},
	{In: []int{7}, Out: 6},
	{In: []int{9}, Out: 8},
	{In: []int{11}, Out: 10},
}

// TTL packages. IDs are persisted in design files. Do NOT change them.
var (
	TTL7400   = NewTTL("7400", "quad 2-input NAND gate", 14, NotOf(AndOf(In(0), In(1))), quad2...)
	TTL7402   = NewTTL("7402", "quad 2-input NOR gate", 14, NotOf(OrOf(In(0), In(1))), quadNor...)
	TTL7404   = NewTTL("7404", "hex inverter", 14, NotOf(In(0)), hex1...)
	TTL7408   = NewTTL("7408", "quad 2-input AND gate", 14, AndOf(In(0), In(1)), quad2...)
	TTL7432   = NewTTL("7432", "quad 2-input OR gate", 14, OrOf(In(0), In(1)), quad2...)
	TTL7486   = NewTTL("7486", "quad 2-input XOR gate", 14, XorOf(In(0), In(1)), quad2...)
	TTL747266 = NewTTL("747266", "quad 2-input XNOR gate", 14, NotOf(XorOf(In(0), In(1))), quad2...)
)
