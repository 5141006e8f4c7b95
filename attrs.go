// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Attributes is a read-only view of a component's configuration.
//
type Attributes interface {
	// Int returns the integer value of key.
	Int(key string) (int, bool)
	// Bool returns the boolean value of key.
	Bool(key string) (bool, bool)
	// String returns the string value of key.
	String(key string) (string, bool)
	// Keys returns all keys in sorted order.
	Keys() []string
}

// Attrs is a map based Attributes implementation. Values should be int, bool
// or string.
//
type Attrs map[string]interface{}

// Int implements Attributes.
func (a Attrs) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Bool implements Attributes.
func (a Attrs) Bool(key string) (bool, bool) {
	v, ok := a[key].(bool)
	return v, ok
}

// String implements Attributes.
func (a Attrs) String(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

// Keys implements Attributes.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseAttrs parses a list of key=value strings. Values "true" and "false"
// become booleans, decimal integers become ints and anything else a string.
//
func ParseAttrs(kvs []string) (Attrs, error) {
	a := make(Attrs, len(kvs))
	for _, kv := range kvs {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			return nil, errors.Errorf("invalid attribute %q, expected key=value", kv)
		}
		k, v := strings.TrimSpace(kv[:i]), strings.TrimSpace(kv[i+1:])
		if b, err := strconv.ParseBool(v); err == nil && (v == "true" || v == "false") {
			a[k] = b
		} else if n, err := strconv.Atoi(v); err == nil {
			a[k] = n
		} else {
			a[k] = v
		}
	}
	return a, nil
}

// PositiveInt returns the value of a width deriving attribute. It returns a
// ConfigurationError if the attribute is missing, not an integer, or not
// positive.
//
func PositiveInt(a Attributes, component, key string) (int, error) {
	n, ok := a.Int(key)
	if !ok {
		return 0, &ConfigurationError{Component: component, Attribute: key, Reason: "missing integer attribute"}
	}
	if n <= 0 {
		return 0, &ConfigurationError{Component: component, Attribute: key, Value: n, Reason: "must be a positive integer"}
	}
	return n, nil
}

// BoolOr returns the boolean value of key or def if the key is not set.
//
func BoolOr(a Attributes, key string, def bool) bool {
	if b, ok := a.Bool(key); ok {
		return b
	}
	return def
}

// Fingerprint returns a stable string representation of a.
//
func Fingerprint(a Attributes) string {
	var b strings.Builder
	for i, k := range a.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		if n, ok := a.Int(k); ok {
			b.WriteString(strconv.Itoa(n))
		} else if v, ok := a.Bool(k); ok {
			b.WriteString(strconv.FormatBool(v))
		} else if s, ok := a.String(k); ok {
			b.WriteString(strconv.Quote(s))
		}
	}
	return b.String()
}
