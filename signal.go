// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import "strconv"

// A Signal is a named port or wire with a bit width.
//
// Bus signals are declared as vectors even when their width is 1, so that
// generated code can index them regardless of the attribute values.
//
// Init marks a register that powers up with all bits cleared. Generated files
// give such signals an initial value so that HDL simulation starts from the
// same state as the circuit parts.
//
type Signal struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
	Bus   bool   `yaml:"bus,omitempty"`
	Init  bool   `yaml:"init,omitempty"`
}

// Signals is an ordered list of signals with unique names. The zero value is
// an empty list.
//
type Signals []Signal

// Add returns s with a new signal appended. It returns a ConfigurationError if
// the width is not positive or the name is already used.
//
func (s Signals) Add(name string, width int) (Signals, error) {
	return s.add(Signal{Name: name, Width: width})
}

// AddBus is like Add but the new signal is a bus.
//
func (s Signals) AddBus(name string, width int) (Signals, error) {
	return s.add(Signal{Name: name, Width: width, Bus: true})
}

// AddRegister is like AddBus but the new signal powers up cleared.
//
func (s Signals) AddRegister(name string, width int) (Signals, error) {
	return s.add(Signal{Name: name, Width: width, Bus: true, Init: true})
}

func (s Signals) add(sig Signal) (Signals, error) {
	name, width := sig.Name, sig.Width
	if width <= 0 {
		return s, &ConfigurationError{Attribute: name, Value: width, Reason: "signal width must be positive"}
	}
	if _, ok := s.Lookup(name); ok {
		return s, &ConfigurationError{Attribute: name, Reason: "duplicate signal name"}
	}
	return append(s, sig), nil
}

// MustAdd is like Add but panics on error. It is meant for signal lists with
// widths already validated.
//
func (s Signals) MustAdd(name string, width int) Signals {
	r, err := s.Add(name, width)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the named signal.
//
func (s Signals) Get(name string) (Signal, bool) {
	for _, sig := range s {
		if sig.Name == name {
			return sig, true
		}
	}
	return Signal{}, false
}

// Lookup returns the width of the named signal.
//
func (s Signals) Lookup(name string) (width int, ok bool) {
	for _, sig := range s {
		if sig.Name == name {
			return sig.Width, true
		}
	}
	return 0, false
}

// Names returns the signal names in order.
//
func (s Signals) Names() []string {
	r := make([]string, len(s))
	for i := range s {
		r[i] = s[i].Name
	}
	return r
}

// Bits returns the total width of all signals.
//
func (s Signals) Bits() int {
	n := 0
	for _, sig := range s {
		n += sig.Width
	}
	return n
}

// BusPinName returns the name of pin i of a bus: name[i].
//
func BusPinName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
