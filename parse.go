// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseConnections parses a connection string of the form
//
//	"a=x, b=y[2], in[0..3]=bus[4..7], ins=leds"
//
// into a list of connections. The left hand side of each assignment is a pin
// of the part, the right hand side a wire in the circuit. If the left hand
// side names a bus of the part, each bit i is connected to bit i of the right
// hand side bus, or to the right hand side constant (true, false, clk).
//
func ParseConnections(s string) ([]Connection, error) {
	var conns []Connection
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		i := strings.IndexByte(a, '=')
		if i < 0 {
			return nil, errors.Errorf("in %q: missing '=' in %q", s, a)
		}
		f, v := strings.TrimSpace(a[:i]), strings.TrimSpace(a[i+1:])
		if f == "" || v == "" {
			return nil, errors.Errorf("in %q: invalid pin mapping %q", s, a)
		}
		conns = append(conns, Connection{Formal: f, Actual: v})
	}
	return conns, nil
}

// expandConnection expands a connection into individual pin pairs.
//
func expandConnection(c Connection, pins map[string]bool) (formals, actuals []string, err error) {
	fs, err := expandRange(c.Formal)
	if err != nil {
		return nil, nil, errors.Wrap(err, "expand pin "+c.Formal)
	}
	vs, err := expandRange(c.Actual)
	if err != nil {
		return nil, nil, errors.Wrap(err, "expand wire "+c.Actual)
	}
	if len(fs) == 1 && !pins[fs[0]] {
		// whole bus
		n := 0
		for pins[BusPinName(fs[0], n)] {
			n++
		}
		if n == 0 {
			return nil, nil, errors.Errorf("invalid pin name %s", c.Formal)
		}
		bus := fs[0]
		fs = make([]string, n)
		for i := range fs {
			fs[i] = BusPinName(bus, i)
		}
		if len(vs) == 1 && !isConstant(vs[0]) {
			v := vs[0]
			vs = make([]string, n)
			for i := range vs {
				vs[i] = BusPinName(v, i)
			}
		}
	}
	for _, f := range fs {
		if !pins[f] {
			return nil, nil, errors.Errorf("invalid pin name %s", f)
		}
	}
	switch {
	case len(fs) == len(vs):
	case len(vs) == 1:
		v := vs[0]
		vs = make([]string, len(fs))
		for i := range vs {
			vs[i] = v
		}
	default:
		return nil, nil, errors.Errorf("pin count mismatch in pin mapping: %s=%s", c.Formal, c.Actual)
	}
	return fs, vs, nil
}

func isConstant(name string) bool {
	return name == True || name == False || name == Clk
}

func expandRange(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name")
	}
	n := name[i+1:]
	i = strings.Index(n, "..")
	if i < 0 {
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	n = n[i+2:]
	i = strings.IndexRune(n, ']')
	if i < 0 {
		return nil, errors.New("no terminating ] in bus range")
	}
	end, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.Errorf("invalid bus range %d..%d", start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}
