// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package linebuf provides a line oriented text template buffer.
//
// Templates are blocks of text with {{key}} placeholders. A placeholder may
// carry trailing padding spaces inside the braces, like {{key  }}, which are
// written verbatim after the substituted value. Numeric keys {{1}}, {{2}}...
// refer to the positional arguments given to Add.
//
//	lines, err := linebuf.New().
//		Bind("out", "q").
//		Add(`
//			{{out}} <= {{1}};
//			`, "d").
//		Emit(3)
//	// lines = []string{"   q <= d;"}
//
package linebuf

import (
	"fmt"
	"strconv"
	"strings"
)

// A TemplateBindingError is returned by Emit when a template references a key
// that has no binding. It is always a defect in the code that builds the
// template, never a user error.
//
type TemplateBindingError struct {
	Key  string // unbound key
	Line string // template line referencing the key
}

func (e *TemplateBindingError) Error() string {
	return fmt.Sprintf("linebuf: unbound placeholder {{%s}} in %q", e.Key, e.Line)
}

type segment struct {
	text  string // literal text, or key
	pad   string // trailing padding inside the braces
	isKey bool
}

type line struct {
	src  string
	segs []segment // nil for blank lines
}

// A Buffer accumulates template blocks and key bindings. Bindings are
// resolved by Emit, so rebinding a key before Emit changes all lines that
// reference it.
//
type Buffer struct {
	pairs map[string]string
	lines []line
}

// New returns a new empty buffer.
//
func New() *Buffer {
	return &Buffer{pairs: make(map[string]string)}
}

// Bind binds key to value and returns b. value is formatted with fmt.Sprint
// unless it is a string or an int.
//
func (b *Buffer) Bind(key string, value interface{}) *Buffer {
	b.pairs[key] = format(value)
	return b
}

// Bound returns the value bound to key.
//
func (b *Buffer) Bound(key string) (string, bool) {
	v, ok := b.pairs[key]
	return v, ok
}

// Add appends a template block to b and returns b. Positional placeholders
// are substituted immediately with args; named placeholders are kept until
// Emit.
//
// A multi-line block is dedented: the leading newline, trailing blank lines
// and the indentation common to all non-blank lines are removed. A single line
// template is kept as is, leading spaces included.
//
func (b *Buffer) Add(template string, args ...interface{}) *Buffer {
	var fargs []string
	if len(args) > 0 {
		fargs = make([]string, len(args))
		for i, a := range args {
			fargs[i] = format(a)
		}
	}
	for _, src := range dedent(template) {
		if src == "" {
			b.lines = append(b.lines, line{})
			continue
		}
		b.lines = append(b.lines, line{src: src, segs: parse(src, fargs)})
	}
	return b
}

// Empty appends a blank line.
//
func (b *Buffer) Empty() *Buffer {
	b.lines = append(b.lines, line{})
	return b
}

// Len returns the number of lines in b.
//
func (b *Buffer) Len() int { return len(b.lines) }

// Emit resolves all placeholders and returns the resulting lines, each non
// blank line being prefixed with indent spaces. Blank lines are returned as
// empty strings.
//
// If any placeholder is unbound, Emit returns a *TemplateBindingError and no
// lines.
//
func (b *Buffer) Emit(indent int) ([]string, error) {
	if indent < 0 {
		indent = 0
	}
	prefix := strings.Repeat(" ", indent)
	out := make([]string, 0, len(b.lines))
	var sb strings.Builder
	for _, l := range b.lines {
		if l.segs == nil {
			out = append(out, "")
			continue
		}
		sb.Reset()
		sb.WriteString(prefix)
		for _, s := range l.segs {
			if !s.isKey {
				sb.WriteString(s.text)
				continue
			}
			v, ok := b.pairs[s.text]
			if !ok {
				return nil, &TemplateBindingError{Key: s.text, Line: l.src}
			}
			sb.WriteString(v)
			sb.WriteString(s.pad)
		}
		out = append(out, sb.String())
	}
	return out, nil
}

// MustEmit is like Emit but panics on unbound placeholders.
//
func (b *Buffer) MustEmit(indent int) []string {
	lines, err := b.Emit(indent)
	if err != nil {
		panic(err)
	}
	return lines
}

// Keys returns the named keys referenced by template, in order of first
// appearance. Numeric keys are reported as well.
//
func Keys(template string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, src := range dedent(template) {
		for _, s := range parse(src, nil) {
			if s.isKey && !seen[s.text] {
				seen[s.text] = true
				keys = append(keys, s.text)
			}
		}
	}
	return keys
}

// parse splits a line into literal and key segments. Numeric keys within the
// range of args are replaced by the argument as a literal.
//
func parse(src string, args []string) []segment {
	segs := make([]segment, 0, 4)
	lit := 0
	for i := 0; i < len(src); {
		j := strings.Index(src[i:], "{{")
		if j < 0 {
			break
		}
		j += i
		k := strings.Index(src[j+2:], "}}")
		if k < 0 {
			break
		}
		k += j + 2
		inner := src[j+2 : k]
		key := strings.TrimRight(inner, " ")
		if !validKey(key) {
			i = j + 2
			continue
		}
		if lit < j {
			segs = append(segs, segment{text: src[lit:j]})
		}
		pad := inner[len(key):]
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(args) {
			segs = append(segs, segment{text: args[n-1] + pad})
		} else {
			segs = append(segs, segment{text: key, pad: pad, isKey: true})
		}
		i = k + 2
		lit = i
	}
	if lit < len(src) {
		segs = append(segs, segment{text: src[lit:]})
	}
	return segs
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	return !strings.ContainsAny(key, " \t{}")
}

func dedent(template string) []string {
	if !strings.Contains(template, "\n") {
		if strings.TrimSpace(template) == "" {
			return nil
		}
		return []string{strings.TrimRight(template, " \t")}
	}
	template = strings.TrimPrefix(template, "\n")
	src := strings.Split(template, "\n")
	for len(src) > 0 && strings.TrimSpace(src[len(src)-1]) == "" {
		src = src[:len(src)-1]
	}
	min := -1
	for _, l := range src {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if min < 0 || n < min {
			min = n
		}
	}
	out := make([]string, len(src))
	for i, l := range src {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out[i] = strings.TrimRight(l[min:], " \t")
	}
	return out
}

func format(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
