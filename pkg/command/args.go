// Package command turns keyword-style invocation arguments into command lines
// for the mc and minio binaries.
//
// A command template is a literal skeleton with named slots, for example
//
//	mc {flags} admin user add {target} {username} {password}
//
// Arguments whose names match a slot are substituted in place. Every other
// argument is rendered as a command-line flag and placed in the reserved
// {flags} slot.
package command

import (
	"fmt"
	"sort"
	"strings"
)

// Args maps argument names to values. Supported values are string, bool,
// []string and anything printable with fmt (numbers, fmt.Stringer).
type Args map[string]interface{}

// Clone returns a shallow copy of a. A nil receiver yields an empty map.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Has reports whether name is set.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// SetDefault sets name to value unless it is already present.
func (a Args) SetDefault(name string, value interface{}) {
	if _, ok := a[name]; !ok {
		a[name] = value
	}
}

// Merge copies every entry of other into a, overwriting existing keys.
func (a Args) Merge(other Args) {
	for k, v := range other {
		a[k] = v
	}
}

// Keys returns the argument names in sorted order.
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JoinList turns a list-valued argument into Words so that it can occupy one
// positional slot, each element rendering as its own word. A string is split
// on whitespace.
func (a Args) JoinList(name string) {
	switch v := a[name].(type) {
	case []string:
		a[name] = Words(append([]string(nil), v...))
	case []interface{}:
		parts := make(Words, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		a[name] = parts
	case string:
		a[name] = Words(strings.Fields(v))
	}
}
