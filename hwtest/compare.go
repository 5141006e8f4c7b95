// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits and
// generators.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/hwlib"
)

func connString(pins []string, prefix string) string {
	var b strings.Builder
	for _, n := range pins {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(prefix)
		b.WriteString(n)
	}
	return b.String()
}

func randBool(r *rand.Rand) hwgen.Value {
	return hwgen.FromBool(r.Int63()&(1<<62) != 0)
}

func randValue(r *rand.Rand) hwgen.Value {
	return hwgen.Values()[r.Intn(len(hwgen.Values()))]
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Inputs are first set to all 0, then all 1, then to random four-valued
// states. Outputs are compared after each clock cycle.
//
func ComparePart(t *testing.T, tpc uint, part1 hwgen.NewPartFn, part2 hwgen.NewPartFn) {
	t.Helper()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	ps1, ps2 := part1(""), part2("")

	// compare specs
	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatal("len(ps1.Inputs) != len(ps2.Inputs)")
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatal("len(ps1.Outputs) != len(ps2.Outputs)")
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("ps1.Inputs[i] = %q != ps2.Inputs[i] = %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("ps1.Outputs[i] = %q != ps2.Outputs[i] = %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	inputs := make([]hwgen.Value, len(ps1.Inputs))
	outputs := make([][2]hwgen.Value, len(ps1.Outputs))

	// both parts read the same input wires and drive their own output wires
	in := connString(ps1.Inputs, "")
	parts := hwgen.Parts{
		part1(joinConns(in, connString(ps1.Outputs, "p1."))),
		part2(joinConns(in, connString(ps2.Outputs, "p2."))),
	}
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, hwlib.Input(func() hwgen.Value { return inputs[k] })("out="+n))
	}
	for i, o := range ps1.Outputs {
		n := i
		parts = append(parts,
			hwlib.Output(func(v hwgen.Value) { outputs[n][0] = v })("in=p1."+o),
			hwlib.Output(func(v hwgen.Value) { outputs[n][1] = v })("in=p2."+o))
	}

	c, err := hwgen.NewCircuit(0, tpc, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got hwgen.Value) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteRune('=')
			b.WriteString(inputs[i].String())
		}
		return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
	}
	check := func() {
		c.TickTock()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}

	iter := len(ps1.Inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()

	// try all 0
	for i := range inputs {
		inputs[i] = hwgen.Zero
	}
	check()

	// try all 1
	for i := range inputs {
		inputs[i] = hwgen.One
	}
	check()

	for i := 0; i < iter; i++ {
		for in := range inputs {
			inputs[in] = randBool(rnd)
		}
		check()
	}
	for i := 0; i < iter; i++ {
		for in := range inputs {
			inputs[in] = randValue(rnd)
		}
		check()
	}

	elapsed := time.Since(start)
	ticks := c.Steps() / c.SPC()
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, ticks, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}

func joinConns(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "," + b
}
