// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package design loads design files. A design file is an HCL file declaring a
// single top-level design and its component instances:
//
//	design "top" {
//	  dialect = "vhdl"
//	  component "leds" {
//	    type      = "RGBArrayColumnScanning"
//	    rows      = 2
//	    columns   = 3
//	    activeLow = true
//	  }
//	  component "u0" {
//	    type = "7400"
//	    nets = { gateA0 = "s_ledArrayRowRedOutputs0" }
//	  }
//	}
//
// All component attributes other than type and nets make up the component's
// attribute set.
//
package design

import (
	"math/big"
	"sort"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/assemble"
	"github.com/db47h/hwgen/hwlib"
	"github.com/db47h/hwgen/internal/schema"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
)

// A Design is a decoded design file.
//
type Design struct {
	Name string
	// Dialect is the dialect name set in the file, empty if unset.
	Dialect    string
	Components []Component
}

// A Component is a component instance of a design.
//
type Component struct {
	Label string
	Type  string
	Attrs hwgen.Attrs
	Nets  map[string]string
}

type hclFile struct {
	Designs []*hclDesign `hcl:"design,block"`
}

type hclDesign struct {
	Name       string          `hcl:"name,label"`
	Dialect    *string         `hcl:"dialect,optional"`
	Components []*hclComponent `hcl:"component,block"`
}

type hclComponent struct {
	Label  string            `hcl:"label,label"`
	Type   string            `hcl:"type"`
	Nets   map[string]string `hcl:"nets,optional"`
	Remain hcl.Body          `hcl:",remain"`
}

// Load loads the design file at path.
//
func Load(path string) (*Design, error) {
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parse %s", path)
	}
	return decode(f, path)
}

// Parse parses a design from src. filename is only used in error messages.
//
func Parse(src []byte, filename string) (*Design, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parse %s", filename)
	}
	return decode(f, filename)
}

func decode(f *hcl.File, filename string) (*Design, error) {
	var hf hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &hf); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decode %s", filename)
	}
	if len(hf.Designs) != 1 {
		return nil, errors.Errorf("%s: expected exactly one design block, got %d", filename, len(hf.Designs))
	}
	hd := hf.Designs[0]
	d := &Design{Name: hd.Name}
	if hd.Dialect != nil {
		d.Dialect = *hd.Dialect
	}
	seen := make(map[string]bool, len(hd.Components))
	for _, hc := range hd.Components {
		if seen[hc.Label] {
			return nil, errors.Errorf("%s: duplicate component %q", filename, hc.Label)
		}
		seen[hc.Label] = true
		a, err := attributes(hc.Remain)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: component %q", filename, hc.Label)
		}
		d.Components = append(d.Components, Component{Label: hc.Label, Type: hc.Type, Attrs: a, Nets: hc.Nets})
	}
	return d, nil
}

// attributes converts the remaining attributes of a component block.
//
func attributes(body hcl.Body) (hwgen.Attrs, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	names := make([]string, 0, len(attrs))
	for n := range attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	a := make(hwgen.Attrs, len(attrs))
	for _, n := range names {
		attr := attrs[n]
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		x, err := goValue(v)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %s (%s)", n, attr.Range)
		}
		a[n] = x
	}
	return a, nil
}

func goValue(v cty.Value) (interface{}, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, errors.New("value must be set")
	}
	switch v.Type() {
	case cty.Bool:
		return v.True(), nil
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return nil, errors.Errorf("%s is not an integer", bf.Text('g', -1))
		}
		n, acc := bf.Int64()
		if acc != big.Exact || int64(int(n)) != n {
			return nil, errors.Errorf("%s out of range", bf.Text('g', -1))
		}
		return int(n), nil
	}
	return nil, errors.Errorf("unsupported type %s", v.Type().FriendlyName())
}

// Instances validates every component against the schema of its family and
// returns the corresponding instances.
//
func (d *Design) Instances() ([]assemble.Instance, error) {
	r := make([]assemble.Instance, 0, len(d.Components))
	for _, c := range d.Components {
		g, ok := hwlib.Lookup(c.Type)
		if !ok {
			return nil, errors.Errorf("component %q: unknown family %q", c.Label, c.Type)
		}
		if err := schema.Validate(c.Type, c.Attrs); err != nil {
			return nil, errors.Wrapf(err, "component %q", c.Label)
		}
		r = append(r, assemble.Instance{Label: c.Label, Generator: g, Attrs: c.Attrs, Nets: c.Nets})
	}
	return r, nil
}
