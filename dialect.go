// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Dialect selects the HDL syntax of generated text.
//
type Dialect int

// Supported dialects.
//
const (
	VHDL Dialect = iota
	Verilog
)

// Dialects returns all supported dialects.
//
func Dialects() []Dialect { return []Dialect{VHDL, Verilog} }

func (d Dialect) String() string {
	switch d {
	case VHDL:
		return "VHDL"
	case Verilog:
		return "Verilog"
	}
	return "Dialect(" + strconv.Itoa(int(d)) + ")"
}

// Ext returns the usual file extension for d, without the leading dot.
//
func (d Dialect) Ext() string {
	switch d {
	case VHDL:
		return "vhd"
	case Verilog:
		return "v"
	}
	return ""
}

// ParseDialect parses a dialect name. It accepts "vhdl", "verilog" and "v",
// case insensitive.
//
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vhdl", "vhd":
		return VHDL, nil
	case "verilog", "v":
		return Verilog, nil
	}
	return 0, errors.Errorf("unknown HDL dialect %q", s)
}
