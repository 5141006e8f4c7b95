// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwgen

import "fmt"

// A ConfigurationError reports an attribute value that a generator cannot
// handle, like a non-positive width. It aborts generation of the enclosing
// module.
//
type ConfigurationError struct {
	Component string      // generator ID, may be empty
	Attribute string      // offending attribute
	Value     interface{} // offending value, nil if missing
	Reason    string
}

func (e *ConfigurationError) Error() string {
	var prefix string
	if e.Component != "" {
		prefix = e.Component + ": "
	}
	if e.Value == nil {
		return fmt.Sprintf("%sattribute %q: %s", prefix, e.Attribute, e.Reason)
	}
	return fmt.Sprintf("%sattribute %q = %v: %s", prefix, e.Attribute, e.Value, e.Reason)
}

// An UnsupportedDialectError is returned when a body or port map is requested
// for a dialect that no generator implements.
//
type UnsupportedDialectError struct {
	Dialect Dialect
}

func (e *UnsupportedDialectError) Error() string {
	return "unsupported HDL dialect " + e.Dialect.String()
}
