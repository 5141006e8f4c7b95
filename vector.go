// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"strings"

	"github.com/pkg/errors"
)

// A Vector is an ordered sequence of values representing a bus. Bit 0 is the
// least significant bit.
//
type Vector []Value

// NewVector returns a vector of the given width with all bits set to v.
//
func NewVector(width int, v Value) Vector {
	r := make(Vector, width)
	for i := range r {
		r[i] = v
	}
	return r
}

// VectorOf returns a width bits vector holding the unsigned value u.
//
func VectorOf(width int, u uint64) Vector {
	r := make(Vector, width)
	for bit := range r {
		r[bit] = FromBool(bit < 64 && u&(1<<uint(bit)) != 0)
	}
	return r
}

// ParseVector parses a vector written MSB first, like "10XZ". Underscores are
// ignored.
//
func ParseVector(s string) (Vector, error) {
	s = strings.Replace(s, "_", "", -1)
	r := make(Vector, len(s))
	for i := 0; i < len(s); i++ {
		v, err := ParseValue(s[i])
		if err != nil {
			return nil, errors.Wrapf(err, "vector %q", s)
		}
		r[len(s)-1-i] = v
	}
	return r, nil
}

// Width returns the number of bits in v.
//
func (v Vector) Width() int { return len(v) }

// Get returns bit n.
//
// Get panics if n is out of range.
//
func (v Vector) Get(n int) Value {
	if n < 0 || n >= len(v) {
		panic(errors.Errorf("bit %d out of range [0, %d)", n, len(v)))
	}
	return v[n]
}

// Set sets bit n to value x.
//
// Set panics if n is out of range.
//
func (v Vector) Set(n int, x Value) {
	if n < 0 || n >= len(v) {
		panic(errors.Errorf("bit %d out of range [0, %d)", n, len(v)))
	}
	v[n] = x
}

// Uint returns the vector as an unsigned integer. ok is false if any bit is
// Unknown or Floating, or if the vector is wider than 64 bits.
//
func (v Vector) Uint() (u uint64, ok bool) {
	if len(v) > 64 {
		return 0, false
	}
	for bit, x := range v {
		b, ok := x.Bool()
		if !ok {
			return 0, false
		}
		if b {
			u |= 1 << uint(bit)
		}
	}
	return u, true
}

// Not returns a copy of v with all bits complemented.
//
func (v Vector) Not() Vector {
	r := make(Vector, len(v))
	for i, x := range v {
		r[i] = x.Not()
	}
	return r
}

// Equal returns true if v and w have the same width and values.
//
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}

// String returns the vector as a string, MSB first.
//
func (v Vector) String() string {
	var b strings.Builder
	b.Grow(len(v))
	for i := len(v) - 1; i >= 0; i-- {
		b.WriteByte(v[i].Byte())
	}
	return b.String()
}
