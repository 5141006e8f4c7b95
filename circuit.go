// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component is a component in a circuit that can Get and Set states.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Inputs: []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func (s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func (c *Circuit) { c.Set(out, c.Get(in).Not()) },
//			}
//		}}
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Buses are declared as individual pins: "in[0]", "in[1]"...
	Inputs []string
	// Output pin names.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// See ParseConnections for the syntax of the connection string.
//
// NewPart panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(errors.Wrapf(err, "part %s", p.Name))
	}
	return Part{p, conns}
}

// A NewPartFn is a function that takes a connection string and returns a new
// Part.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a
// circuit.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a convenience wrapper for []Part.
//
type Parts []Part

// Circuit is a runnable circuit simulation.
//
// Each call to Step advances the simulation by one unit of propagation delay:
// values set by components during a step become visible to Get in the next
// step.
//
type Circuit struct {
	s0    []Value // wire states frame #0
	s1    []Value // wire states frame #1
	cs    []Component
	count int  // wire count
	tpc   uint // ticks per clock cycle
	tick  uint

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// stepsPerCycle indicates how many simulation steps to run per clock cycle. It
// is rounded up to a power of two, with a minimum of 2.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
//
func NewCircuit(workers int, stepsPerCycle uint, parts Parts) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	if stepsPerCycle < 2 {
		stepsPerCycle = 2
	}
	stepsPerCycle--
	stepsPerCycle |= stepsPerCycle >> 1
	stepsPerCycle |= stepsPerCycle >> 2
	stepsPerCycle |= stepsPerCycle >> 4
	stepsPerCycle |= stepsPerCycle >> 8
	stepsPerCycle |= stepsPerCycle >> 16
	stepsPerCycle |= stepsPerCycle >> 32
	stepsPerCycle++

	// new circuit with room for constant value pins.
	cc := &Circuit{count: cstCount, tpc: stepsPerCycle}
	root := newSocket(cc)
	drivers := make(map[int]string)
	var ups []Component
	for _, p := range parts {
		sub, err := root.wire(p, drivers)
		if err != nil {
			return nil, err
		}
		ups = append(ups, p.Mount(sub)...)
	}
	ups = append(ups, updClock)
	cc.cs = ups
	cc.s0 = make([]Value, cc.count)
	cc.s1 = make([]Value, cc.count)
	for i := range cc.s0 {
		cc.s0[i] = Floating
		cc.s1[i] = Floating
	}
	// init constant pins
	cc.s0[cstClk] = One
	cc.s1[cstClk] = One
	cc.s0[cstFalse], cc.s1[cstFalse] = Zero, Zero
	cc.s0[cstTrue], cc.s1[cstTrue] = One, One

	// workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers <= 0 {
		workers = 1
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, ups[:size], wc)
		ups = ups[size:]
	}

	return cc, nil
}

func updClock(c *Circuit) {
	if c.s0[cstFalse] != Zero || c.s0[cstTrue] != One || c.s0[cstFloat] != Floating {
		panic("constant pins have been overwritten")
	}

	// update clock signal
	tick := c.tick + 1
	if tick&(c.tpc-1) == 0 {
		c.s1[cstClk] = One
	} else if tick&(c.tpc/2-1) == 0 {
		c.s1[cstClk] = Zero
	} else {
		c.s1[cstClk] = c.s0[cstClk]
	}
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
}

// alloc allocates a pin and returns its number.
//
func (c *Circuit) allocPin() int {
	cnt := c.count
	c.count++
	return cnt
}

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint {
	return c.tick
}

// SPC returns the stepsPerCycle value.
//
func (c *Circuit) SPC() uint {
	return c.tpc
}

// AtTick returns true if the current step is at the beginning of a clock cycle
// (raising edge of Clk).
//
func (c *Circuit) AtTick() bool {
	return c.Steps()&(c.SPC()-1) == 0
}

// AtTock returns true if the current step is at the beginning of the second
// half of a clock cycle (falling edge of Clk).
//
func (c *Circuit) AtTock() bool {
	return (c.Steps()+c.SPC()/2)&(c.SPC()-1) == 0
}

// Get returns the state of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Get(n int) Value {
	return c.s0[n]
}

// Set sets the state s of pin n. The value of n should be obtained in a
// MountFn by a call to one of the Socket methods.
//
func (c *Circuit) Set(n int, s Value) {
	if n < cstCount {
		return
	}
	c.s1[n] = s
}

// GetBus returns the state of the given pins as a vector.
//
func (c *Circuit) GetBus(pins []int) Vector {
	v := make(Vector, len(pins))
	for i, p := range pins {
		v[i] = c.s0[p]
	}
	return v
}

// SetBus sets the state of the given pins. v and pins must have the same
// length.
//
func (c *Circuit) SetBus(pins []int, v Vector) {
	if len(v) != len(pins) {
		panic(errors.Errorf("bus width mismatch: %d pins, %d values", len(pins), len(v)))
	}
	for i, p := range pins {
		c.Set(p, v[i])
	}
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}

	c.wg.Wait()
	c.tick++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation until the beginning of the next half clock cycle.
//
func (c *Circuit) Tick() {
	for c.Get(cstClk) == One {
		c.Step()
	}
}

// Tock runs the simulation until the beginning of the next clock cycle.
// Once Tock returns, the output of clocked components should have stabilized.
//
func (c *Circuit) Tock() {
	for c.Get(cstClk) != One {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
//
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
