// SPDX-License-Identifier: MPL-2.0

// Package capability tracks optional add-ons loaded into the running process.
//
// A capability is present because something enabled it for this run (config,
// environment, a CLI flag), not because a project declares it. Units use the
// registry to pick between command variants.
package capability

import (
	"slices"
	"strings"
	"sync"
)

// EnvVar lists capabilities to load, separated by commas or whitespace.
const EnvVar = "KENDER_CAPABILITIES"

// Registry is a concurrency-safe set of loaded capability names.
type Registry struct {
	mu     sync.RWMutex
	loaded map[string]struct{}
}

// NewRegistry creates a registry with the given capabilities loaded.
func NewRegistry(names ...string) *Registry {
	r := &Registry{loaded: make(map[string]struct{})}
	r.Load(names...)
	return r
}

// Load marks capabilities as loaded. Names are trimmed; blanks are ignored.
func (r *Registry) Load(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r.loaded[name] = struct{}{}
	}
}

// Loaded reports whether name is loaded.
func (r *Registry) Loaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loaded[name]
	return ok
}

// Names returns the loaded capabilities in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.loaded))
	for name := range r.loaded {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseList splits a KENDER_CAPABILITIES style value.
func ParseList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
