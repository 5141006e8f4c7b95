// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"strconv"
	"strings"

	"github.com/db47h/hwgen/linebuf"
)

// A Generator produces HDL code for one component family.
//
// Generators are stateless: every attribute dependent value is computed from
// the Attributes passed to each call. A single Generator value can therefore
// be used concurrently for any number of component instances.
//
type Generator interface {
	// ID returns the family identifier. It is persisted in design files and
	// must never change.
	ID() string
	// Name returns the HDL entity/module name.
	Name() string
	// Inputs returns the input ports.
	Inputs(a Attributes) (Signals, error)
	// Outputs returns the output ports.
	Outputs(a Attributes) (Signals, error)
	// Wires returns the internal signals. They are never exposed to the
	// parent module.
	Wires(a Attributes) (Signals, error)
	// VHDL returns the architecture body.
	VHDL(a Attributes) ([]string, error)
	// Verilog returns the module body.
	Verilog(a Attributes) ([]string, error)
	// Connections returns the port associations used when instance id is
	// instantiated in a parent module.
	Connections(a Attributes, id int) ([]Connection, error)
}

// A Defaulter is a Generator with optional attributes. Defaults returns the
// value used for each optional attribute when it is not set.
//
type Defaulter interface {
	Defaults() Attrs
}

// WithDefaults returns a copy of a completed with the defaults of g, if g is a
// Defaulter. Attributes set in a take precedence.
//
func WithDefaults(g Generator, a Attributes) Attrs {
	r := make(Attrs)
	if d, ok := g.(Defaulter); ok {
		for k, v := range d.Defaults() {
			r[k] = v
		}
	}
	for _, k := range a.Keys() {
		if n, ok := a.Int(k); ok {
			r[k] = n
		} else if b, ok := a.Bool(k); ok {
			r[k] = b
		} else if v, ok := a.String(k); ok {
			r[k] = v
		}
	}
	return r
}

// A Connection associates a component port (Formal) with a signal of the
// enclosing module (Actual).
//
type Connection struct {
	Formal string
	Actual string
}

// BodyIndent is the indentation of generated module bodies.
//
const BodyIndent = 3

// PortMapIndent is the indentation of generated port maps.
//
const PortMapIndent = 6

// ModuleBody returns the body of g for dialect d.
//
func ModuleBody(g Generator, a Attributes, d Dialect) ([]string, error) {
	switch d {
	case VHDL:
		return g.VHDL(a)
	case Verilog:
		return g.Verilog(a)
	}
	return nil, &UnsupportedDialectError{Dialect: d}
}

// PortMap returns the instantiation port map of instance id of g.
//
//	VHDL:    PORT MAP ( formal => actual, ... );
//	Verilog: ( .formal(actual), ... );
//
func PortMap(g Generator, a Attributes, id int, d Dialect) ([]string, error) {
	if d != VHDL && d != Verilog {
		return nil, &UnsupportedDialectError{Dialect: d}
	}
	conns, err := g.Connections(a, id)
	if err != nil {
		return nil, err
	}
	return RenderPortMap(conns, d)
}

// RenderPortMap renders a list of connections. Formal names are padded to a
// common width.
//
func RenderPortMap(conns []Connection, d Dialect) ([]string, error) {
	if len(conns) == 0 {
		return nil, nil
	}
	w := 0
	for _, c := range conns {
		if len(c.Formal) > w {
			w = len(c.Formal)
		}
	}
	var open, cont, tmpl string
	switch d {
	case VHDL:
		open, cont, tmpl = "PORT MAP ( ", "           ", "{{1}}{{2}} => {{3}}{{4}}"
	case Verilog:
		open, cont, tmpl = "( ", "  ", "{{1}}.{{2}}({{3}}){{4}}"
	default:
		return nil, &UnsupportedDialectError{Dialect: d}
	}
	b := linebuf.New()
	for i, c := range conns {
		lead := cont
		if i == 0 {
			lead = open
		}
		end := ","
		if i == len(conns)-1 {
			end = " );"
		}
		b.Add(tmpl, lead, pad(c.Formal, w), c.Actual, end)
	}
	return b.Emit(PortMapIndent)
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// NewBuffer returns a line buffer with the operator keys of dialect d bound:
//
//	{{assign}} {{=}} {{not}} {{and}} {{or}} {{xor}} {{zero}} {{one}}
//
// So that a template like
//
//	{{assign}}y{{=}}{{not}}(a{{xor}}b);
//
// renders as "y <= NOT(a XOR b);" in VHDL and "assign y = ~(a ^ b);" in
// Verilog.
//
func NewBuffer(d Dialect) *linebuf.Buffer {
	b := linebuf.New()
	switch d {
	case VHDL:
		b.Bind("assign", "").
			Bind("=", " <= ").
			Bind("not", "NOT").
			Bind("and", " AND ").
			Bind("or", " OR ").
			Bind("xor", " XOR ").
			Bind("zero", "'0'").
			Bind("one", "'1'")
	case Verilog:
		b.Bind("assign", "assign ").
			Bind("=", " = ").
			Bind("not", "~").
			Bind("and", " & ").
			Bind("or", " | ").
			Bind("xor", " ^ ").
			Bind("zero", "1'b0").
			Bind("one", "1'b1")
	}
	return b
}

// NetName returns the name of the parent module signal connected to port of
// instance id.
//
func NetName(port string, id int) string {
	return "s_" + port + strconv.Itoa(id)
}

// Interface returns the inputs and outputs of g, checking that no name is
// both an input and an output.
//
func Interface(g Generator, a Attributes) (inputs, outputs Signals, err error) {
	if inputs, err = g.Inputs(a); err != nil {
		return nil, nil, err
	}
	if outputs, err = g.Outputs(a); err != nil {
		return nil, nil, err
	}
	for _, o := range outputs {
		if _, ok := inputs.Lookup(o.Name); ok {
			return nil, nil, &ConfigurationError{Component: g.ID(), Attribute: o.Name, Reason: "port is both input and output"}
		}
	}
	return inputs, outputs, nil
}
