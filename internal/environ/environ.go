// SPDX-License-Identifier: MPL-2.0

// Package environ answers environment-variable questions for kender's units.
//
// The process environment is the default source. Tests and callers that need
// deterministic answers use FromMap instead of mutating os.Environ.
package environ

import "os"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Oracle reports on environment variables through a LookupFunc.
type Oracle struct {
	lookup LookupFunc
}

// Process returns an Oracle backed by the real process environment.
func Process() *Oracle {
	return New(os.LookupEnv)
}

// New returns an Oracle backed by lookup. A nil lookup reports every
// variable as unset.
func New(lookup LookupFunc) *Oracle {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &Oracle{lookup: lookup}
}

// FromMap returns an Oracle over a fixed set of variables. The map is read
// on every call, so later writes are visible.
func FromMap(vars map[string]string) *Oracle {
	return New(func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	})
}

// IsSet reports whether name is present in the environment. Any value,
// including the empty string, counts as set.
func (o *Oracle) IsSet(name string) bool {
	_, ok := o.lookup(name)
	return ok
}

// Get returns the value of name, or "" when unset.
func (o *Oracle) Get(name string) string {
	v, _ := o.lookup(name)
	return v
}
