// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import "github.com/pkg/errors"

// A Value is the state of a single wire.
//
type Value uint8

// Logic values.
//
// Zero and One are driven levels. Unknown is a conflicting or undetermined
// level. Floating is an undriven wire.
//
const (
	Zero Value = iota
	One
	Unknown
	Floating
	valueCount
)

var valueChars = [valueCount]byte{'0', '1', 'X', 'Z'}

// String returns the one character representation of v: 0, 1, X or Z.
//
func (v Value) String() string {
	if v >= valueCount {
		return "?"
	}
	return string(valueChars[v])
}

// Byte returns the character representation of v.
//
func (v Value) Byte() byte {
	if v >= valueCount {
		return '?'
	}
	return valueChars[v]
}

// IsDefined returns true if v is Zero or One.
//
func (v Value) IsDefined() bool { return v == Zero || v == One }

// Bool returns the boolean value of a defined value. ok is false for Unknown
// and Floating values.
//
func (v Value) Bool() (b bool, ok bool) {
	switch v {
	case Zero:
		return false, true
	case One:
		return true, true
	}
	return false, false
}

// FromBool converts a boolean to Zero or One.
//
func FromBool(b bool) Value {
	if b {
		return One
	}
	return Zero
}

// ParseValue parses a single character value. It accepts 0, 1, x, X, u, U, z
// and Z.
//
func ParseValue(c byte) (Value, error) {
	switch c {
	case '0':
		return Zero, nil
	case '1':
		return One, nil
	case 'x', 'X', 'u', 'U':
		return Unknown, nil
	case 'z', 'Z':
		return Floating, nil
	}
	return Unknown, errors.Errorf("invalid logic value %q", c)
}

// truth tables, indexed by [a][b].
var (
	tNot = [valueCount]Value{One, Zero, Unknown, Unknown}

	tAnd = [valueCount][valueCount]Value{
		// 0     1        X        Z
		{Zero, Zero, Zero, Zero},          // 0
		{Zero, One, Unknown, Unknown},     // 1
		{Zero, Unknown, Unknown, Unknown}, // X
		{Zero, Unknown, Unknown, Unknown}, // Z
	}

	tOr = [valueCount][valueCount]Value{
		{Zero, One, Unknown, Unknown},
		{One, One, One, One},
		{Unknown, One, Unknown, Unknown},
		{Unknown, One, Unknown, Unknown},
	}

	tXor = [valueCount][valueCount]Value{
		{Zero, One, Unknown, Unknown},
		{One, Zero, Unknown, Unknown},
		{Unknown, Unknown, Unknown, Unknown},
		{Unknown, Unknown, Unknown, Unknown},
	}
)

// valid values only; any out of range value is treated as Unknown.
func (v Value) idx() Value {
	if v >= valueCount {
		return Unknown
	}
	return v
}

// Not returns the complement of v.
//
//	Function: !0 = 1, !1 = 0, !X = !Z = X
//
func (v Value) Not() Value { return tNot[v.idx()] }

// And returns v AND w. Zero is dominant.
//
func (v Value) And(w Value) Value { return tAnd[v.idx()][w.idx()] }

// Or returns v OR w. One is dominant.
//
func (v Value) Or(w Value) Value { return tOr[v.idx()][w.idx()] }

// Xor returns v XOR w. Any undefined operand yields Unknown.
//
func (v Value) Xor(w Value) Value { return tXor[v.idx()][w.idx()] }

// Nand returns NOT(v AND w).
//
func (v Value) Nand(w Value) Value { return v.And(w).Not() }

// Nor returns NOT(v OR w).
//
func (v Value) Nor(w Value) Value { return v.Or(w).Not() }

// Xnor returns NOT(v XOR w).
//
func (v Value) Xnor(w Value) Value { return v.Xor(w).Not() }

// Values returns all logic values, in order.
//
func Values() []Value {
	return []Value{Zero, One, Unknown, Floating}
}
