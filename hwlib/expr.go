// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
)

// An Expr is a combinational logic function over a small set of inputs. The
// same expression is evaluated during simulation and rendered as HDL, which
// keeps both in agreement.
//
type Expr interface {
	// Eval evaluates the expression. in[i] is the value of In(i).
	Eval(in []hwgen.Value) hwgen.Value
	// Arity returns the number of inputs the expression reads.
	Arity() int

	render(tok *tokens, in []string) string
	binary() bool
}

// In returns an expression reading input i.
//
func In(i int) Expr {
	if i < 0 {
		panic("negative input index " + strconv.Itoa(i))
	}
	return inputExpr(i)
}

// NotOf returns !e.
//
func NotOf(e Expr) Expr { return notExpr{e} }

// AndOf returns a && b.
//
func AndOf(a, b Expr) Expr { return &opExpr{"and", a, b, hwgen.Value.And} }

// OrOf returns a || b.
//
func OrOf(a, b Expr) Expr { return &opExpr{"or", a, b, hwgen.Value.Or} }

// XorOf returns a ^ b.
//
func XorOf(a, b Expr) Expr { return &opExpr{"xor", a, b, hwgen.Value.Xor} }

// Render renders e in dialect d. operands[i] is the HDL name of In(i).
//
func Render(e Expr, d hwgen.Dialect, operands []string) (string, error) {
	if d != hwgen.VHDL && d != hwgen.Verilog {
		return "", &hwgen.UnsupportedDialectError{Dialect: d}
	}
	if len(operands) < e.Arity() {
		return "", errors.Errorf("expression reads %d inputs, got %d operands", e.Arity(), len(operands))
	}
	return e.render(newTokens(d), operands), nil
}

type tokens struct {
	not, and, or, xor string
}

func newTokens(d hwgen.Dialect) *tokens {
	b := hwgen.NewBuffer(d)
	t := new(tokens)
	t.not, _ = b.Bound("not")
	t.and, _ = b.Bound("and")
	t.or, _ = b.Bound("or")
	t.xor, _ = b.Bound("xor")
	return t
}

type inputExpr int

func (i inputExpr) Eval(in []hwgen.Value) hwgen.Value     { return in[i] }
func (i inputExpr) Arity() int                            { return int(i) + 1 }
func (i inputExpr) render(_ *tokens, in []string) string { return in[i] }
func (inputExpr) binary() bool                            { return false }

type notExpr struct {
	e Expr
}

func (n notExpr) Eval(in []hwgen.Value) hwgen.Value { return n.e.Eval(in).Not() }
func (n notExpr) Arity() int                        { return n.e.Arity() }
func (n notExpr) render(t *tokens, in []string) string {
	return t.not + "(" + n.e.render(t, in) + ")"
}
func (notExpr) binary() bool { return false }

type opExpr struct {
	name string
	a, b Expr
	fn   func(a, b hwgen.Value) hwgen.Value
}

func (o *opExpr) Eval(in []hwgen.Value) hwgen.Value { return o.fn(o.a.Eval(in), o.b.Eval(in)) }

func (o *opExpr) Arity() int {
	a, b := o.a.Arity(), o.b.Arity()
	if a > b {
		return a
	}
	return b
}

func (o *opExpr) render(t *tokens, in []string) string {
	var sym string
	switch o.name {
	case "and":
		sym = t.and
	case "or":
		sym = t.or
	case "xor":
		sym = t.xor
	}
	return operand(o.a, t, in) + sym + operand(o.b, t, in)
}

func (*opExpr) binary() bool { return true }

// nested binary operations are always parenthesized. VHDL does not allow
// mixing logical operators without them.
func operand(e Expr, t *tokens, in []string) string {
	s := e.render(t, in)
	if e.binary() {
		return "(" + s + ")"
	}
	return s
}
