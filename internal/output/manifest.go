// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package output

import (
	"io"

	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A Manifest describes the interface of a generated component or design.
//
type Manifest struct {
	Name    string        `yaml:"name"`
	Family  string        `yaml:"family,omitempty"`
	Attrs   hwgen.Attrs   `yaml:"attributes,omitempty"`
	Inputs  hwgen.Signals `yaml:"inputs"`
	Outputs hwgen.Signals `yaml:"outputs"`
	Wires   hwgen.Signals `yaml:"wires,omitempty"`
	Files   []string      `yaml:"files,omitempty"`
}

// ManifestOf returns the manifest of family g configured by a.
//
func ManifestOf(g hwgen.Generator, a hwgen.Attrs) (*Manifest, error) {
	ins, outs, err := hwgen.Interface(g, a)
	if err != nil {
		return nil, err
	}
	wires, err := g.Wires(a)
	if err != nil {
		return nil, err
	}
	return &Manifest{Name: g.Name(), Family: g.ID(), Attrs: a, Inputs: ins, Outputs: outs, Wires: wires}, nil
}

// WriteManifest writes m to w as YAML.
//
func WriteManifest(w io.Writer, m *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "encode manifest")
	}
	return errors.Wrap(enc.Close(), "encode manifest")
}

// ReadManifest decodes a manifest written by WriteManifest.
//
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode manifest")
	}
	return &m, nil
}
