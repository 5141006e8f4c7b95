// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"
	"strings"

	"github.com/db47h/hwgen"
	"github.com/db47h/hwgen/linebuf"
	"github.com/pkg/errors"
)

// Family identifiers. They are persisted in design files. Do NOT change them.
//
const (
	LedArrayColumnScanningID = "LedArrayColumnScanning"
	RGBArrayColumnScanningID = "RGBArrayColumnScanning"
)

// Attribute keys of column scanning arrays.
//
const (
	AttrRows      = "rows"
	AttrColumns   = "columns"
	AttrActiveLow = "activeLow"
)

// Port and wire names of column scanning arrays.
//
const (
	LedArrayClock           = "clock"
	LedArrayColumnAddress   = "ledArrayColumnAddress"
	LedArrayInputs          = "ledArrayInputs"
	LedArrayRowOutputs      = "ledArrayRowOutputs"
	LedArrayRedInputs       = "ledArrayRedInputs"
	LedArrayGreenInputs     = "ledArrayGreenInputs"
	LedArrayBlueInputs      = "ledArrayBlueInputs"
	LedArrayRowRedOutputs   = "ledArrayRowRedOutputs"
	LedArrayRowGreenOutputs = "ledArrayRowGreenOutputs"
	LedArrayRowBlueOutputs  = "ledArrayRowBlueOutputs"

	columnCounterReg = "s_columnCounterReg"
)

// A Scanner addresses a matrix of Rows x Columns LEDs driven by a flattened
// input vector: LED (r, c) is input bit r*Columns+c.
//
type Scanner struct {
	Rows      int
	Columns   int
	ActiveLow bool
}

// ScannerOf returns the Scanner configured by a. The rows and columns
// attributes must be positive integers; activeLow defaults to false.
//
func ScannerOf(a hwgen.Attributes, component string) (Scanner, error) {
	rows, err := hwgen.PositiveInt(a, component, AttrRows)
	if err != nil {
		return Scanner{}, err
	}
	cols, err := hwgen.PositiveInt(a, component, AttrColumns)
	if err != nil {
		return Scanner{}, err
	}
	return Scanner{Rows: rows, Columns: cols, ActiveLow: hwgen.BoolOr(a, AttrActiveLow, false)}, nil
}

// Leds returns the number of LEDs in the matrix.
//
func (s Scanner) Leds() int { return s.Rows * s.Columns }

// AddressBits returns the width of the column address: ceil(log2(Columns)),
// with a minimum of 1.
//
func (s Scanner) AddressBits() int {
	bits := 1
	for 1<<uint(bits) < s.Columns {
		bits++
	}
	return bits
}

// Address returns the row outputs while column is active. Row r reads input
// bit r*Columns+column, inverted if ActiveLow is set. Bits beyond the width of
// in read as an inactive LED, so the corresponding rows always report off.
//
// Inputs go through like a std_logic buffer: an active-high array passes
// Floating and Unknown unchanged, while the inversion of an active-low array
// turns both into Unknown.
//
// Address panics if column is not in [0, Columns).
//
func (s Scanner) Address(in hwgen.Vector, column int) hwgen.Vector {
	if column < 0 || column >= s.Columns {
		panic(errors.Errorf("column %d out of range [0, %d)", column, s.Columns))
	}
	out := make(hwgen.Vector, s.Rows)
	for r := range out {
		v := hwgen.Zero
		if i := r*s.Columns + column; i < len(in) {
			v = in[i]
		}
		if s.ActiveLow {
			v = v.Not()
		}
		out[r] = v
	}
	return out
}

// Off returns the output value of an unlit LED.
//
func (s Scanner) Off() hwgen.Value {
	return hwgen.FromBool(s.ActiveLow)
}

// A ColumnCounter is the free running column register of a scanning array.
// The zero value is not usable; use NewColumnCounter.
//
type ColumnCounter struct {
	columns int
	column  int
}

// NewColumnCounter returns a new counter over [0, columns), starting at 0.
//
func NewColumnCounter(columns int) *ColumnCounter {
	if columns <= 0 {
		panic(errors.Errorf("invalid column count %d", columns))
	}
	return &ColumnCounter{columns: columns}
}

// Tick advances the counter by one, wrapping to 0 after the last column.
//
func (c *ColumnCounter) Tick() {
	c.column++
	if c.column >= c.columns {
		c.column = 0
	}
}

// Column returns the active column.
//
func (c *ColumnCounter) Column() int { return c.column }

// Reset sets the counter back to 0.
//
func (c *ColumnCounter) Reset() { c.column = 0 }

// RGB addresses the three channels of an RGB matrix with a single shared
// column, so that all channels change column in lock-step.
//
type RGB struct {
	Scanner
}

// Address returns the row outputs of each channel while column is active.
//
func (x RGB) Address(red, green, blue hwgen.Vector, column int) (r, g, b hwgen.Vector) {
	return x.Scanner.Address(red, column), x.Scanner.Address(green, column), x.Scanner.Address(blue, column)
}

// channel is one color channel of a scanning array.
type channel struct {
	in   string // input bus
	out  string // row outputs
	wire string // polarity corrected inputs
}

// ColumnScanning generates column scanning LED arrays. The counter and column
// address logic is shared; the addressing logic is generated once per
// channel.
//
type ColumnScanning struct {
	id       string
	name     string
	channels []channel
}

// Column scanning array generators.
//
var (
	LedArray = &ColumnScanning{
		id:   LedArrayColumnScanningID,
		name: "LedArrayColumnScanning",
		channels: []channel{
			{LedArrayInputs, LedArrayRowOutputs, "s_maxLedInputs"},
		},
	}
	RGBArray = &ColumnScanning{
		id:   RGBArrayColumnScanningID,
		name: "RGBArrayColumnScanning",
		channels: []channel{
			{LedArrayRedInputs, LedArrayRowRedOutputs, "s_maxRedLedInputs"},
			{LedArrayGreenInputs, LedArrayRowGreenOutputs, "s_maxGreenLedInputs"},
			{LedArrayBlueInputs, LedArrayRowBlueOutputs, "s_maxBlueLedInputs"},
		},
	}
)

// ID implements hwgen.Generator.
func (g *ColumnScanning) ID() string { return g.id }

// Name implements hwgen.Generator.
func (g *ColumnScanning) Name() string { return g.name }

// Channels returns the number of color channels.
//
func (g *ColumnScanning) Channels() int { return len(g.channels) }

// Inputs implements hwgen.Generator.
//
//	clock: 1
//	<channel inputs>: rows*columns
//
func (g *ColumnScanning) Inputs(a hwgen.Attributes) (hwgen.Signals, error) {
	s, err := ScannerOf(a, g.id)
	if err != nil {
		return nil, err
	}
	sigs := hwgen.Signals{}.MustAdd(LedArrayClock, 1)
	for _, ch := range g.channels {
		if sigs, err = sigs.AddBus(ch.in, s.Leds()); err != nil {
			return nil, err
		}
	}
	return sigs, nil
}

// Outputs implements hwgen.Generator.
//
//	ledArrayColumnAddress: address bits
//	<channel row outputs>: rows
//
func (g *ColumnScanning) Outputs(a hwgen.Attributes) (hwgen.Signals, error) {
	s, err := ScannerOf(a, g.id)
	if err != nil {
		return nil, err
	}
	sigs, err := hwgen.Signals{}.AddBus(LedArrayColumnAddress, s.AddressBits())
	if err != nil {
		return nil, err
	}
	for _, ch := range g.channels {
		if sigs, err = sigs.AddBus(ch.out, s.Rows); err != nil {
			return nil, err
		}
	}
	return sigs, nil
}

// Defaults implements hwgen.Defaulter.
//
func (g *ColumnScanning) Defaults() hwgen.Attrs {
	return hwgen.Attrs{AttrActiveLow: false}
}

// Wires implements hwgen.Generator.
//
func (g *ColumnScanning) Wires(a hwgen.Attributes) (hwgen.Signals, error) {
	s, err := ScannerOf(a, g.id)
	if err != nil {
		return nil, err
	}
	sigs, err := hwgen.Signals{}.AddRegister(columnCounterReg, s.AddressBits())
	if err != nil {
		return nil, err
	}
	for _, ch := range g.channels {
		if sigs, err = sigs.AddBus(ch.wire, s.Leds()); err != nil {
			return nil, err
		}
	}
	return sigs, nil
}

func (g *ColumnScanning) buffer(a hwgen.Attributes, d hwgen.Dialect) (*linebuf.Buffer, Scanner, error) {
	s, err := ScannerOf(a, g.id)
	if err != nil {
		return nil, s, err
	}
	b := hwgen.NewBuffer(d).
		Bind("clock", LedArrayClock).
		Bind("addr", LedArrayColumnAddress).
		Bind("counter", columnCounterReg).
		Bind("bits", s.AddressBits()).
		Bind("last", s.Columns-1).
		Bind("nrOfLeds", s.Leds()).
		Bind("nrOfRows", s.Rows).
		Bind("nrOfColumns", s.Columns)
	off, _ := b.Bound("zero")
	if s.ActiveLow {
		off, _ = b.Bound("one")
	}
	b.Bind("off", off)
	inv := ""
	if s.ActiveLow {
		inv = "NOT "
		if d == hwgen.Verilog {
			inv = "~"
		}
	}
	b.Bind("inv", inv)
	return b, s, nil
}

// VHDL implements hwgen.Generator.
//
func (g *ColumnScanning) VHDL(a hwgen.Attributes) ([]string, error) {
	b, _, err := g.buffer(a, hwgen.VHDL)
	if err != nil {
		return nil, err
	}
	b.Add(`
		columnCounter : PROCESS ( {{clock}} ) IS
		BEGIN
		   IF (rising_edge({{clock}})) THEN
		      IF (unsigned({{counter}}) = {{last}}) THEN
		         {{counter}} <= (OTHERS => '0');
		      ELSE
		         {{counter}} <= std_logic_vector(unsigned({{counter}}) + 1);
		      END IF;
		   END IF;
		END PROCESS columnCounter;
		`).
		Empty().
		Add("{{addr}} <= {{counter}};").
		Empty()

	ins := make([]string, len(g.channels))
	for i, ch := range g.channels {
		ins[i] = ch.in
	}
	b.Add("makeVirtualInputs : PROCESS ( {{1}} ) IS", strings.Join(ins, ", ")).
		Add("BEGIN")
	for _, ch := range g.channels {
		b.Add("   {{1}} <= (OTHERS => {{off}});", ch.wire).
			Add("   {{1}}({{nrOfLeds}}-1 DOWNTO 0) <= {{inv}}{{2}};", ch.wire, ch.in)
	}
	b.Add("END PROCESS makeVirtualInputs;").
		Empty().
		Add("GenOutputs : FOR n IN {{nrOfRows}}-1 DOWNTO 0 GENERATE")
	for _, ch := range g.channels {
		b.Add("   {{1}}(n) <= {{2}}(to_integer(unsigned({{counter}})) + n*{{nrOfColumns}});", ch.out, ch.wire)
	}
	b.Add("END GENERATE GenOutputs;")
	return b.Emit(hwgen.BodyIndent)
}

// Verilog implements hwgen.Generator.
//
func (g *ColumnScanning) Verilog(a hwgen.Attributes) ([]string, error) {
	b, _, err := g.buffer(a, hwgen.Verilog)
	if err != nil {
		return nil, err
	}
	b.Add(`
		always @(posedge {{clock}})
		begin
		   if ({{counter}} == {{last}})
		      {{counter}} <= 0;
		   else
		      {{counter}} <= {{counter}} + 1;
		end
		`).
		Empty().
		Add("assign {{addr}} = {{counter}};").
		Empty()
	for _, ch := range g.channels {
		b.Add("assign {{1}} = {{inv}}{{2}};", ch.wire, ch.in)
	}
	b.Empty().Add(`
		genvar i;
		generate
		   for (i = 0; i < {{nrOfRows}}; i = i + 1)
		   begin:outputs
		`)
	for _, ch := range g.channels {
		b.Add("      assign {{1}}[i] = {{2}}[i*{{nrOfColumns}}+{{counter}}];", ch.out, ch.wire)
	}
	b.Add(`
		   end
		endgenerate
		`)
	return b.Emit(hwgen.BodyIndent)
}

// Connections implements hwgen.Generator. The clock is connected to the
// parent's clock, outputs to <port><id> and inputs to s_<port><id>.
//
func (g *ColumnScanning) Connections(a hwgen.Attributes, id int) ([]hwgen.Connection, error) {
	if _, err := ScannerOf(a, g.id); err != nil {
		return nil, err
	}
	n := strconv.Itoa(id)
	conns := []hwgen.Connection{
		{Formal: LedArrayColumnAddress, Actual: LedArrayColumnAddress + n},
		{Formal: LedArrayClock, Actual: LedArrayClock},
	}
	for _, ch := range g.channels {
		conns = append(conns, hwgen.Connection{Formal: ch.out, Actual: ch.out + n})
	}
	for _, ch := range g.channels {
		conns = append(conns, hwgen.Connection{Formal: ch.in, Actual: hwgen.NetName(ch.in, id)})
	}
	return conns, nil
}

// Part returns a circuit part simulating the array configured by s. Pins are
// named after the HDL ports: clock, ledArrayInputs[i], ledArrayColumnAddress[i]
// and ledArrayRowOutputs[i] for a monochrome array.
//
// The column counter starts at 0 and advances on every rising edge of clock.
// Outputs reflect the counter and inputs of the previous step.
//
func (g *ColumnScanning) Part(s Scanner) hwgen.NewPartFn {
	if s.Rows <= 0 || s.Columns <= 0 {
		panic(errors.Errorf("%s: invalid geometry %dx%d", g.id, s.Rows, s.Columns))
	}
	bits := s.AddressBits()
	ins := []string{LedArrayClock}
	outs := bus(bits, LedArrayColumnAddress)
	for _, ch := range g.channels {
		ins = append(ins, bus(s.Leds(), ch.in)...)
		outs = append(outs, bus(s.Rows, ch.out)...)
	}
	return (&hwgen.PartSpec{
		Name:    g.name,
		Inputs:  ins,
		Outputs: outs,
		Mount: func(sock *hwgen.Socket) []hwgen.Component {
			clk := sock.Pin(LedArrayClock)
			addr := sock.Bus(LedArrayColumnAddress, bits)
			in := make([][]int, len(g.channels))
			out := make([][]int, len(g.channels))
			for i, ch := range g.channels {
				in[i] = sock.Bus(ch.in, s.Leds())
				out[i] = sock.Bus(ch.out, s.Rows)
			}
			cnt := NewColumnCounter(s.Columns)
			prev := hwgen.Unknown
			return []hwgen.Component{func(c *hwgen.Circuit) {
				if v := c.Get(clk); v != prev {
					if prev == hwgen.Zero && v == hwgen.One {
						cnt.Tick()
					}
					prev = v
				}
				col := cnt.Column()
				c.SetBus(addr, hwgen.VectorOf(bits, uint64(col)))
				for i := range g.channels {
					c.SetBus(out[i], s.Address(c.GetBus(in[i]), col))
				}
			}}
		}}).NewPart
}

// LedArrayPart returns a circuit part simulating a monochrome array.
//
func LedArrayPart(s Scanner) hwgen.NewPartFn { return LedArray.Part(s) }

// RGBArrayPart returns a circuit part simulating an RGB array.
//
func RGBArrayPart(s Scanner) hwgen.NewPartFn { return RGBArray.Part(s) }
