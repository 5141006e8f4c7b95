// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package assemble

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/linebuf"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// An Instance is a component instantiated in a top-level design.
//
type Instance struct {
	// Label is the instance label. It must be unique within a design.
	Label     string
	Generator hwgen.Generator
	Attrs     hwgen.Attributes
	// Nets overrides the default net connected to a port, by port name.
	Nets map[string]string
}

// A File is a generated HDL file.
//
type File struct {
	// Name is the entity or module name.
	Name  string
	Lines []string
}

// FileName returns the file name of f for dialect d.
//
func (f *File) FileName(d hwgen.Dialect) string {
	return f.Name + "." + d.Ext()
}

// A Design is a generated top-level design.
//
type Design struct {
	Dialect hwgen.Dialect
	Top     File
	// Components holds one file per distinct family and attribute set, in
	// order of first use.
	Components []File
	// Inputs and Outputs are the ports of the top-level module.
	Inputs  hwgen.Signals
	Outputs hwgen.Signals
	// Signals are the nets connecting two instances.
	Signals hwgen.Signals
}

// Write writes all files of the design into dir and returns their paths.
//
func (d *Design) Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WithStack(err)
	}
	var paths []string
	for _, f := range append([]File{d.Top}, d.Components...) {
		p := filepath.Join(dir, f.FileName(d.Dialect))
		var size int
		for _, l := range f.Lines {
			size += len(l) + 1
		}
		buf := make([]byte, 0, size)
		for _, l := range f.Lines {
			buf = append(buf, l...)
			buf = append(buf, '\n')
		}
		if err := os.WriteFile(p, buf, 0644); err != nil {
			return paths, errors.WithStack(err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// variant is a distinct generator and attribute set.
type variant struct {
	g    hwgen.Generator
	a    hwgen.Attributes
	name string
}

// instance holds the generated parts of an Instance.
type instance struct {
	ins, outs hwgen.Signals
	conns     []hwgen.Connection
	portMap   []string
}

// Top generates a top-level design named name for dialect d. Component files
// and instance port maps are generated concurrently by at most workers
// goroutines, or without limit if workers <= 0. The first error aborts the
// generation.
//
// Nets connected to an output of one instance and an input of another become
// internal signals of the top-level module. All other nets become ports of the
// top-level module. Identical inputs produce identical designs.
//
func Top(ctx context.Context, name string, instances []Instance, d hwgen.Dialect, workers int) (*Design, error) {
	if d != hwgen.VHDL && d != hwgen.Verilog {
		return nil, &hwgen.UnsupportedDialectError{Dialect: d}
	}
	if len(instances) == 0 {
		return nil, errors.Errorf("design %s: no instances", name)
	}
	labels := make(map[string]bool, len(instances))
	for i, inst := range instances {
		if inst.Label == "" || inst.Generator == nil {
			return nil, errors.Errorf("design %s: instance #%d: missing label or generator", name, i)
		}
		if labels[inst.Label] {
			return nil, errors.Errorf("design %s: duplicate instance label %s", name, inst.Label)
		}
		labels[inst.Label] = true
	}

	variants, entity := variantsOf(instances)
	files := make([]File, len(variants))
	insts := make([]instance, len(instances))

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i := range variants {
		v := &variants[i]
		f := &files[i]
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := Component(v.g, v.a, d, v.name)
			if err != nil {
				return err
			}
			*f = File{Name: v.name, Lines: lines}
			return nil
		})
	}
	for i := range instances {
		inst := &instances[i]
		r := &insts[i]
		id := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.generate(inst, id, d)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	ds := &Design{Dialect: d, Components: files}
	if err := ds.nets(instances, insts); err != nil {
		return nil, errors.Wrapf(err, "design %s", name)
	}
	lines, err := ds.top(name, instances, insts, entity)
	if err != nil {
		return nil, errors.Wrapf(err, "design %s", name)
	}
	ds.Top = File{Name: name, Lines: lines}
	return ds, nil
}

// variantsOf returns the distinct variants of instances and the entity name
// of each instance. A family used with a single attribute set keeps its name,
// otherwise variants are numbered in order of first use.
//
func variantsOf(instances []Instance) ([]variant, []string) {
	type key struct{ id, fp string }
	index := make(map[key]int)
	count := make(map[string]int)
	var vs []variant
	vi := make([]int, len(instances))
	for i, inst := range instances {
		k := key{inst.Generator.ID(), hwgen.Fingerprint(hwgen.WithDefaults(inst.Generator, inst.Attrs))}
		n, ok := index[k]
		if !ok {
			n = len(vs)
			index[k] = n
			count[k.id]++
			vs = append(vs, variant{g: inst.Generator, a: inst.Attrs})
		}
		vi[i] = n
	}
	seen := make(map[string]int)
	for i := range vs {
		v := &vs[i]
		v.name = v.g.Name()
		if count[v.g.ID()] > 1 {
			v.name += "_" + strconv.Itoa(seen[v.g.ID()])
			seen[v.g.ID()]++
		}
	}
	entity := make([]string, len(instances))
	for i := range instances {
		entity[i] = vs[vi[i]].name
	}
	return vs, entity
}

func (r *instance) generate(inst *Instance, id int, d hwgen.Dialect) error {
	var err error
	if r.ins, r.outs, err = hwgen.Interface(inst.Generator, inst.Attrs); err != nil {
		return errors.Wrapf(err, "instance %s", inst.Label)
	}
	if r.conns, err = inst.Generator.Connections(inst.Attrs, id); err != nil {
		return errors.Wrapf(err, "instance %s", inst.Label)
	}
	used := 0
	for i := range r.conns {
		if n, ok := inst.Nets[r.conns[i].Formal]; ok {
			r.conns[i].Actual = n
			used++
		}
	}
	if used != len(inst.Nets) {
		for p := range inst.Nets {
			if _, ok := r.ins.Lookup(p); ok {
				continue
			}
			if _, ok := r.outs.Lookup(p); ok {
				continue
			}
			return errors.Errorf("instance %s: no such port %s", inst.Label, p)
		}
	}
	if r.portMap, err = hwgen.RenderPortMap(r.conns, d); err != nil {
		return errors.Wrapf(err, "instance %s", inst.Label)
	}
	return nil
}

type net struct {
	sig     hwgen.Signal
	driver  string // instance.port driving the net
	readers int
}

// nets sorts the nets of all instances into top-level ports and internal
// signals.
//
func (ds *Design) nets(instances []Instance, insts []instance) error {
	nets := make(map[string]*net)
	var order []string
	for i, r := range insts {
		label := instances[i].Label
		for _, c := range r.conns {
			sig, isOut := r.outs.Get(c.Formal)
			if !isOut {
				var ok bool
				if sig, ok = r.ins.Get(c.Formal); !ok {
					return errors.Errorf("instance %s: connection to unknown port %s", label, c.Formal)
				}
			}
			n := nets[c.Actual]
			if n == nil {
				n = &net{sig: hwgen.Signal{Name: c.Actual, Width: sig.Width, Bus: sig.Bus}}
				nets[c.Actual] = n
				order = append(order, c.Actual)
			} else if n.sig.Width != sig.Width || n.sig.Bus != sig.Bus {
				return &hwgen.ConfigurationError{Component: label, Attribute: c.Formal, Value: c.Actual, Reason: "net type mismatch"}
			}
			if isOut {
				if n.driver != "" {
					return errors.Errorf("net %s driven by both %s and %s.%s", c.Actual, n.driver, label, c.Formal)
				}
				n.driver = label + "." + c.Formal
			} else {
				n.readers++
			}
		}
	}
	for _, name := range order {
		n := nets[name]
		switch {
		case n.driver == "":
			ds.Inputs = append(ds.Inputs, n.sig)
		case n.readers == 0:
			ds.Outputs = append(ds.Outputs, n.sig)
		default:
			ds.Signals = append(ds.Signals, n.sig)
		}
	}
	return nil
}

func (ds *Design) top(name string, instances []Instance, insts []instance, entity []string) ([]string, error) {
	ps := ports(ds.Inputs, ds.Outputs)
	b := linebuf.New().Bind("name", name).Bind("arch", Architecture)
	switch ds.Dialect {
	case hwgen.VHDL:
		vhdlHeader(b, ps)
		w := nameWidth(ds.Signals)
		for _, s := range ds.Signals {
			b.Add("   SIGNAL {{1}} : {{2}};", pad(s.Name, w), vhdlType(s))
		}
		if len(ds.Signals) > 0 {
			b.Empty()
		}
		b.Add("BEGIN").Empty()
		for i, inst := range instances {
			b.Add("   {{1}} : ENTITY work.{{2}}", inst.Label, entity[i])
			addLines(b, insts[i].portMap)
			b.Empty()
		}
		b.Add("END {{arch}};")
	default:
		verilogHeader(b, name, ps)
		for _, s := range ds.Signals {
			b.Add("   wire {{1}}{{2}};", verilogRange(s), s.Name)
		}
		if len(ds.Signals) > 0 {
			b.Empty()
		}
		for i, inst := range instances {
			b.Add("   {{1}} {{2}}", entity[i], inst.Label)
			addLines(b, insts[i].portMap)
			b.Empty()
		}
		b.Add("endmodule")
	}
	return b.Emit(0)
}

// addLines adds already rendered lines to b.
//
func addLines(b *linebuf.Buffer, lines []string) {
	for _, l := range lines {
		b.Add("{{1}}", l)
	}
}
