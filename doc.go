// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwgen generates VHDL and Verilog for parameterized logic components and
simulates the same components on a four-valued logic model.

A component family implements the Generator interface. Its ports, internal
wires, module bodies and instantiation port maps are all derived from the
Attributes of an instance:

	body, err := hwgen.ModuleBody(hwlib.TTL7400, hwgen.Attrs{}, hwgen.VHDL)

Bodies are built with a linebuf.Buffer pre-bound with the dialect's operator
tokens (see NewBuffer), so that a single template serves both dialects.

Simulation runs on a Circuit: parts are wired together with connection strings
and each call to Step advances the circuit by one unit of propagation delay.
Wire states are one of Zero, One, Unknown and Floating:

	c, err := hwgen.NewCircuit(0, 8, hwgen.Parts{
		hwlib.Input(func() hwgen.Value { return a })("out=a"),
		hwlib.Not("in=a, out=nota"),
		hwlib.Output(func(v hwgen.Value) { fmt.Println(v) })("in=nota"),
	})
	if err != nil {
		// handle error
	}
	defer c.Dispose()
	c.TickTock()

*/
package hwgen
