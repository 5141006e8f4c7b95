// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"sort"
	"sync"

	"github.com/db47h/hwgen"
	"github.com/pkg/errors"
)

var registry = struct {
	sync.RWMutex
	m map[string]hwgen.Generator
}{m: make(map[string]hwgen.Generator)}

func init() {
	for _, g := range []hwgen.Generator{
		LedArray, RGBArray,
		TTL7400, TTL7402, TTL7404, TTL7408, TTL7432, TTL7486, TTL747266,
	} {
		if err := Register(g); err != nil {
			panic(err)
		}
	}
}

// Register adds g to the family registry. It returns an error if a family
// with the same ID is already registered.
//
func Register(g hwgen.Generator) error {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.m[g.ID()]; ok {
		return errors.Errorf("component family %q already registered", g.ID())
	}
	registry.m[g.ID()] = g
	return nil
}

// Lookup returns the generator registered under id.
//
func Lookup(id string) (hwgen.Generator, bool) {
	registry.RLock()
	g, ok := registry.m[id]
	registry.RUnlock()
	return g, ok
}

// IDs returns the sorted IDs of all registered families.
//
func IDs() []string {
	registry.RLock()
	ids := make([]string, 0, len(registry.m))
	for id := range registry.m {
		ids = append(ids, id)
	}
	registry.RUnlock()
	sort.Strings(ids)
	return ids
}

// LookupTTL returns the TTL package registered under id.
//
func LookupTTL(id string) (*TTL, bool) {
	g, ok := Lookup(id)
	if !ok {
		return nil, false
	}
	t, ok := g.(*TTL)
	return t, ok
}
