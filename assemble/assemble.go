// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package assemble writes complete HDL files: one file per generated
// component, and a top-level file instantiating many components.
//
package assemble

import (
	"strconv"
	"strings"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/linebuf"
	"github.com/pkg/errors"
)

// Architecture is the name of generated VHDL architectures.
//
const Architecture = "platformIndependent"

type direction int

const (
	in direction = iota
	out
)

type port struct {
	hwgen.Signal
	dir direction
}

func ports(ins, outs hwgen.Signals) []port {
	r := make([]port, 0, len(ins)+len(outs))
	for _, s := range ins {
		r = append(r, port{s, in})
	}
	for _, s := range outs {
		r = append(r, port{s, out})
	}
	return r
}

// Component returns the complete HDL text of g configured by a: a VHDL entity
// and its architecture, or a Verilog module. name is the entity or module
// name. If empty, g.Name() is used.
//
func Component(g hwgen.Generator, a hwgen.Attributes, d hwgen.Dialect, name string) ([]string, error) {
	if name == "" {
		name = g.Name()
	}
	ins, outs, err := hwgen.Interface(g, a)
	if err != nil {
		return nil, errors.Wrapf(err, "component %s", name)
	}
	wires, err := g.Wires(a)
	if err != nil {
		return nil, errors.Wrapf(err, "component %s", name)
	}
	body, err := hwgen.ModuleBody(g, a, d)
	if err != nil {
		return nil, errors.Wrapf(err, "component %s", name)
	}
	switch d {
	case hwgen.VHDL:
		return vhdlFile(name, ports(ins, outs), wires, body)
	default:
		return verilogFile(name, ports(ins, outs), wires, body)
	}
}

func vhdlFile(name string, ps []port, wires hwgen.Signals, body []string) ([]string, error) {
	b := linebuf.New().Bind("name", name).Bind("arch", Architecture)
	vhdlHeader(b, ps)
	if len(wires) > 0 {
		w := nameWidth(wires)
		for _, s := range wires {
			b.Add("   SIGNAL {{1}} : {{2}}{{3}};", pad(s.Name, w), vhdlType(s), vhdlInit(s))
		}
		b.Empty()
	}
	b.Add("BEGIN").Empty()
	return finish(b, body, "END {{arch}};")
}

// vhdlHeader adds library clauses, the entity declaration and the head of the
// architecture.
//
func vhdlHeader(b *linebuf.Buffer, ps []port) {
	b.Add(`
		LIBRARY ieee;
		USE ieee.std_logic_1164.all;
		USE ieee.numeric_std.all;
		`).
		Empty().
		Add("ENTITY {{name}} IS")
	w := 0
	for _, p := range ps {
		if len(p.Name) > w {
			w = len(p.Name)
		}
	}
	for i, p := range ps {
		lead := "          "
		if i == 0 {
			lead = "   PORT ( "
		}
		end := ";"
		if i == len(ps)-1 {
			end = " );"
		}
		dir := "IN "
		if p.dir == out {
			dir = "OUT"
		}
		b.Add("{{1}}{{2}} : {{3}} {{4}}{{5}}", lead, pad(p.Name, w), dir, vhdlType(p.Signal), end)
	}
	b.Add("END ENTITY {{name}};").
		Empty().
		Add("ARCHITECTURE {{arch}} OF {{name}} IS").
		Empty()
}

// vhdlInit returns the initializer of a signal declaration.
//
func vhdlInit(s hwgen.Signal) string {
	switch {
	case !s.Init:
		return ""
	case s.Width == 1 && !s.Bus:
		return " := '0'"
	}
	return " := (OTHERS => '0')"
}

func vhdlType(s hwgen.Signal) string {
	if s.Width == 1 && !s.Bus {
		return "std_logic"
	}
	return "std_logic_vector( " + strconv.Itoa(s.Width-1) + " DOWNTO 0 )"
}

func verilogFile(name string, ps []port, wires hwgen.Signals, body []string) ([]string, error) {
	b := linebuf.New().Bind("name", name)
	verilogHeader(b, name, ps)
	if len(wires) > 0 {
		for _, s := range wires {
			b.Add("   {{1}} {{2}}{{3}};", verilogNet(s), verilogRange(s), s.Name)
		}
		b.Empty()
		n := 0
		for _, s := range wires {
			if s.Init {
				b.Add("   initial {{1}} = 0;", s.Name)
				n++
			}
		}
		if n > 0 {
			b.Empty()
		}
	}
	return finish(b, body, "endmodule")
}

// verilogHeader adds the module declaration and the port direction
// declarations.
//
func verilogHeader(b *linebuf.Buffer, name string, ps []port) {
	if len(ps) == 0 {
		b.Add("module {{name}};").Empty()
		return
	}
	cont := strings.Repeat(" ", len("module ")+len(name)+2)
	for i, p := range ps {
		lead := cont
		if i == 0 {
			lead = "module " + name + "( "
		}
		end := ","
		if i == len(ps)-1 {
			end = " );"
		}
		b.Add("{{1}}{{2}}{{3}}", lead, p.Name, end)
	}
	b.Empty()
	for _, p := range ps {
		dir := "input"
		if p.dir == out {
			dir = "output"
		}
		b.Add("   {{1}} {{2}}{{3}};", dir, verilogRange(p.Signal), p.Name)
	}
	b.Empty()
}

// verilogNet returns the net type of an internal signal. Signals named
// ...Reg are assigned in always blocks and must be declared reg.
//
func verilogNet(s hwgen.Signal) string {
	if strings.HasSuffix(s.Name, "Reg") {
		return "reg"
	}
	return "wire"
}

func verilogRange(s hwgen.Signal) string {
	if s.Width == 1 && !s.Bus {
		return ""
	}
	return "[" + strconv.Itoa(s.Width-1) + ":0] "
}

// finish emits b followed by body and the closing line.
//
func finish(b *linebuf.Buffer, body []string, closing string) ([]string, error) {
	b.Add(closing)
	lines, err := b.Emit(0)
	if err != nil {
		return nil, err
	}
	last := lines[len(lines)-1]
	r := make([]string, 0, len(lines)+len(body)+1)
	r = append(r, lines[:len(lines)-1]...)
	r = append(r, body...)
	if len(body) > 0 {
		r = append(r, "")
	}
	return append(r, last), nil
}

func nameWidth(s hwgen.Signals) int {
	w := 0
	for _, sig := range s {
		if len(sig.Name) > w {
			w = len(sig.Name)
		}
	}
	return w
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
