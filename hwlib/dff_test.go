// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"math/rand"
	"testing"

	hw "github.com/db47h/hwgen"
	hl "github.com/db47h/hwgen/hwlib"
)

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

func TestDFF(t *testing.T) {
	var in, out hw.Vector

	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.InputN(4, func() hw.Vector { return in })("out=in"),
		hl.DFF("in=in[0], out=out[0]"),
		hl.DFF("in=in[1], out=out[1]"),
		hl.DFF("in=in[2], out=out[2]"),
		hl.DFF("in=in[3], out=out[3]"),
		hl.OutputN(4, func(o hw.Vector) { out = o })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// the flip flops latch their input on the rising edge of the clock and
	// hold it for the whole cycle.
	for i := 15; i >= 0; i-- {
		in = hw.VectorOf(4, uint64(i))
		c.TickTock()
		c.Tick()
		exp := hw.VectorOf(4, uint64(i))
		if !exp.Equal(out) {
			t.Fatalf("bad output for input %d after tick: expected out = %v, got %v", i, exp, out)
		}
		// change input
		in = hw.VectorOf(4, 0)
		c.Tock()
		if !exp.Equal(out) {
			t.Fatalf("bad output for input %d after tock: expected out = %v, got %v", i, exp, out)
		}
	}
}

func Test_bit_register(t *testing.T) {
	var in, load, out hw.Value

	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Input(func() hw.Value { return in })("out=dffI"),
		hl.Input(func() hw.Value { return load })("out=dffLD"),
		hl.Mux("a=dffO, b=dffI, sel=dffLD, out=muxOut"),
		hl.DFF("in=muxOut, out=dffO"),
		hl.Output(func(v hw.Value) { out = v })("in=dffO"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	var p hw.Value
	for i := 0; i < 1000; i++ {
		in = hw.FromBool(randBool())
		// the register powers up undefined until the first load.
		load = hw.FromBool(i == 0 || randBool())
		c.TickTock()
		c.Tick()
		if load == hw.One {
			p = in
		}
		if p != out {
			t.Fatalf("step %d: expected %v, got %v", i, p, out)
		}
		c.Tock()
	}
}

func TestDFF_floatingInput(t *testing.T) {
	var in, out hw.Value
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Input(func() hw.Value { return in })("out=d"),
		hl.DFF("in=d, out=q"),
		hl.Output(func(v hw.Value) { out = v })("in=q"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	in = hw.Floating
	c.TickTock()
	c.Tick()
	if out != hw.Unknown {
		t.Fatalf("floating input latched as %v, expected %v", out, hw.Unknown)
	}
}

func TestRegisterN(t *testing.T) {
	var (
		in   uint16
		load hw.Value
		out  hw.Vector
	)
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.InputN(16, func() hw.Vector { return hw.VectorOf(16, uint64(in)) })("out=d"),
		hl.Input(func() hw.Value { return load })("out=ld"),
		hl.RegisterN(16)("in=d, load=ld, out=q"),
		hl.OutputN(16, func(v hw.Vector) { out = v })("in=q"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	td := []struct {
		in   uint16
		load hw.Value
		out  string
	}{
		{0x1234, hw.Zero, "XXXXXXXXXXXXXXXX"},
		{0x00ff, hw.One, "0000000011111111"},
		{0xffff, hw.Zero, "0000000011111111"},
		{0x00f0, hw.Unknown, "000000001111XXXX"},
		{0xa5a5, hw.One, "1010010110100101"},
	}
	for i, d := range td {
		in, load = d.in, d.load
		c.TickTock()
		c.Tick()
		exp, err := hw.ParseVector(d.out)
		if err != nil {
			t.Fatal(err)
		}
		if !exp.Equal(out) {
			t.Fatalf("step %d: expected %v, got %v", i, exp, out)
		}
		c.Tock()
	}
}
