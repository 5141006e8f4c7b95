// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package schema validates component attributes against the embedded CUE
// schema of their family.
//
package schema

import (
	_ "embed"
	"sort"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
)

//go:embed schema.cue
var source []byte

// cue values are not safe for concurrent use.
var (
	mu       sync.Mutex
	ctx      *cue.Context
	families cue.Value
)

func load() error {
	if ctx != nil {
		return families.Err()
	}
	ctx = cuecontext.New()
	families = ctx.CompileBytes(source, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("families"))
	return errors.Wrap(families.Err(), "compile schema")
}

// Validate checks a against the schema of family id. Attributes not declared
// by the schema are rejected.
//
func Validate(id string, a hwgen.Attributes) error {
	mu.Lock()
	defer mu.Unlock()
	if err := load(); err != nil {
		return err
	}
	s := families.LookupPath(cue.MakePath(cue.Str(id)))
	if !s.Exists() {
		return errors.Errorf("no schema for component family %q", id)
	}
	v := ctx.Encode(values(a))
	if err := v.Err(); err != nil {
		return errors.Wrapf(err, "encode attributes of %s", id)
	}
	if err := s.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return errors.Wrapf(err, "invalid attributes for %s", id)
	}
	return nil
}

func values(a hwgen.Attributes) map[string]interface{} {
	m := make(map[string]interface{})
	for _, k := range a.Keys() {
		if n, ok := a.Int(k); ok {
			m[k] = n
		} else if b, ok := a.Bool(k); ok {
			m[k] = b
		} else if s, ok := a.String(k); ok {
			m[k] = s
		}
	}
	return m
}

// Families returns the sorted identifiers of all families with a schema.
//
func Families() ([]string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := load(); err != nil {
		return nil, err
	}
	it, err := families.Fields(cue.Definitions(false))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var ids []string
	for it.Next() {
		ids = append(ids, it.Selector().Unquoted())
	}
	sort.Strings(ids)
	return ids, nil
}
