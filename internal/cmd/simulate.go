// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/hwlib"
	"github.com/db47h/hwgen/internal/output"
)

func newSimulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a component",
	}
	cmd.AddCommand(newSimulateTTLCmd(a), newSimulateLedsCmd(a))
	return cmd
}

// parseValues parses a list of logic values, ignoring spaces and underscores.
// The first value is the first input.
//
func parseValues(s string) ([]hwgen.Value, error) {
	var vs []hwgen.Value
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '_' {
			continue
		}
		v, err := hwgen.ParseValue(s[i])
		if err != nil {
			return nil, errors.Wrapf(err, "input %q", s)
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func newSimulateTTLCmd(a *app) *cobra.Command {
	var inputs string
	cmd := &cobra.Command{
		Use:   "ttl <id>",
		Short: "Simulate a TTL package for one clock cycle",
		Long: `Simulate a TTL package for one clock cycle and print its outputs.

--inputs lists the value of every gate input in port declaration order
(gateA0 gateB0 gateA1 ...) using 0, 1, X and Z. Missing inputs float.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chip, ok := hwlib.LookupTTL(strings.TrimPrefix(args[0], "TTL"))
			if !ok {
				return errors.Errorf("unknown TTL package %q", args[0])
			}
			vs, err := parseValues(inputs)
			if err != nil {
				return err
			}
			ins, outs, err := hwgen.Interface(chip, hwgen.Attrs{})
			if err != nil {
				return err
			}
			if len(vs) > len(ins) {
				return errors.Errorf("%s has %d inputs, got %d values", chip.Name(), len(ins), len(vs))
			}
			res, err := simulateTTL(chip, vs, uint(a.cfg.Steps))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, o := range outs {
				fmt.Fprintf(w, "%s = %v\n", o.Name, res[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputs, "inputs", "i", "", "gate input values, like \"10 01 11 00\"")
	return cmd
}

// simulateTTL runs chip in a circuit for one clock cycle. vs holds the input
// values in gate order. It returns the outputs in gate order.
//
func simulateTTL(chip *hwlib.TTL, vs []hwgen.Value, steps uint) ([]hwgen.Value, error) {
	var (
		parts []hwgen.Part
		conns []string
		res   = make([]hwgen.Value, chip.Gates())
		n     = 0
	)
	for g := 0; g < chip.Gates(); g++ {
		l := chip.Layout(g)
		for _, p := range l.In {
			w := "w" + strconv.Itoa(p)
			conns = append(conns, "p"+strconv.Itoa(p)+"="+w)
			if n < len(vs) {
				v := vs[n]
				parts = append(parts, hwlib.Input(func() hwgen.Value { return v })("out="+w))
			}
			n++
		}
		w := "w" + strconv.Itoa(l.Out)
		conns = append(conns, "p"+strconv.Itoa(l.Out)+"="+w)
		r := &res[g]
		parts = append(parts, hwlib.Output(func(v hwgen.Value) { *r = v })("in="+w))
	}
	parts = append(parts, chip.Part()(strings.Join(conns, ", ")))
	c, err := hwgen.NewCircuit(0, steps, parts)
	if err != nil {
		return nil, err
	}
	defer c.Dispose()
	c.TickTock()
	output.Debug("simulated", "chip", chip.Name(), "steps", c.Steps(), "components", c.Size())
	return res, nil
}

func newSimulateLedsCmd(a *app) *cobra.Command {
	var (
		s      hwlib.Scanner
		inputs string
		ticks  int
	)
	cmd := &cobra.Command{
		Use:   "leds",
		Short: "Simulate a monochrome column scanning LED array",
		Long: `Simulate a monochrome column scanning LED array and print the column
address and row outputs after each clock cycle.

--input lists the LED inputs, LED (row r, column c) being value r*columns+c.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.Rows <= 0 || s.Columns <= 0 {
				return &hwgen.ConfigurationError{Component: hwlib.LedArrayColumnScanningID, Attribute: "rows/columns", Value: fmt.Sprintf("%dx%d", s.Rows, s.Columns), Reason: "must be positive"}
			}
			vs, err := parseValues(inputs)
			if err != nil {
				return err
			}
			if len(vs) > s.Leds() {
				return errors.Errorf("%d LEDs, got %d values", s.Leds(), len(vs))
			}
			in := hwgen.NewVector(s.Leds(), hwgen.Zero)
			copy(in, vs)
			frames, err := simulateLeds(s, in, ticks, uint(a.cfg.Steps))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, f := range frames {
				fmt.Fprintf(w, "cycle %d: column %s rows %s\n", i, f[0], f[1])
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&s.Rows, "rows", 1, "number of rows")
	f.IntVar(&s.Columns, "columns", 1, "number of columns")
	f.BoolVar(&s.ActiveLow, "active-low", false, "invert the row outputs")
	f.StringVarP(&inputs, "input", "i", "", "LED input values, missing values are 0")
	f.IntVarP(&ticks, "ticks", "n", 4, "number of clock cycles")
	return cmd
}

// simulateLeds returns the column address and row outputs observed at the end
// of each of ticks clock cycles.
//
func simulateLeds(s hwlib.Scanner, in hwgen.Vector, ticks int, steps uint) ([][2]hwgen.Vector, error) {
	var addr, rows hwgen.Vector
	c, err := hwgen.NewCircuit(0, steps, hwgen.Parts{
		hwlib.InputN(s.Leds(), func() hwgen.Vector { return in })("out=leds"),
		hwlib.LedArrayPart(s)("clock=clk, ledArrayInputs=leds, ledArrayColumnAddress=addr, ledArrayRowOutputs=rows"),
		hwlib.OutputN(s.AddressBits(), func(v hwgen.Vector) { addr = v })("in=addr"),
		hwlib.OutputN(s.Rows, func(v hwgen.Vector) { rows = v })("in=rows"),
	})
	if err != nil {
		return nil, err
	}
	defer c.Dispose()
	frames := make([][2]hwgen.Vector, 0, ticks)
	for i := 0; i < ticks; i++ {
		c.TickTock()
		frames = append(frames, [2]hwgen.Vector{addr, rows})
	}
	return frames, nil
}
