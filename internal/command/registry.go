// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

var (
	// ErrCommandNotFound is returned when no unit is registered under a name.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandUnavailable is returned when a unit does not apply to the project.
	ErrCommandUnavailable = errors.New("command not available")
)

// Registry holds the known units, keyed by name.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// NewDefaultRegistry creates a registry with every built-in unit.
func NewDefaultRegistry(env Environment, deps Dependencies) *Registry {
	r := NewRegistry()
	r.Register(NewBrakeman(env, deps))
	r.Register(NewBundleAudit(env, deps))
	r.Register(NewCucumber(env, deps))
	r.Register(NewJasmine(env, deps))
	r.Register(NewRSpec(env, deps))
	r.Register(NewShamus(env, deps))
	return r
}

// Register adds a unit, replacing any unit with the same name.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns a unit by name
func (r *Registry) Get(name string) (Command, error) {
	c, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrCommandNotFound, name)
	}
	return c, nil
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.commands)
	slices.Sort(names)
	return names
}

// All returns every registered unit, sorted by name.
func (r *Registry) All() []Command {
	names := r.Names()
	all := make([]Command, 0, len(names))
	for _, name := range names {
		all = append(all, r.commands[name])
	}
	return all
}

// Available returns the units that apply right now, sorted by name.
// Availability is evaluated on every call.
func (r *Registry) Available() []Command {
	var available []Command
	for _, c := range r.All() {
		if c.Available() {
			available = append(available, c)
		}
	}
	return available
}

// GetAvailable returns the named unit if it applies right now. Callers
// resolve a unit only after this check succeeds.
func (r *Registry) GetAvailable(name string) (Command, error) {
	c, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if !c.Available() {
		return nil, fmt.Errorf("%w: '%s' does not apply to this project", ErrCommandUnavailable, name)
	}
	return c, nil
}

// Resolve returns the command string for the named unit, refusing units
// that are not available.
func (r *Registry) Resolve(name string) (string, error) {
	c, err := r.GetAvailable(name)
	if err != nil {
		return "", err
	}
	return c.Command(), nil
}
