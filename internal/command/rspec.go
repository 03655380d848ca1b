// SPDX-License-Identifier: MPL-2.0

package command

const (
	rspecParallelCommand = "bundle exec rake parallel:spec[^spec/integration]"
	rspecCommand         = "bundle exec rspec[^spec/integration]"
)

// RSpec runs the project's RSpec suite, excluding spec/integration.
type RSpec struct {
	unit
}

// NewRSpec creates the rspec unit.
func NewRSpec(env Environment, deps Dependencies) *RSpec {
	return &RSpec{unit{env: env, deps: deps}}
}

// Name returns the unit name
func (c *RSpec) Name() string {
	return "rspec"
}

// Available reports whether rspec or rspec-rails is declared. It is always
// false while a project validation is in progress so the validator does not
// trigger the suite a second time.
func (c *RSpec) Available() bool {
	if c.validating() {
		return false
	}
	return c.declaresAny("rspec", "rspec-rails")
}

// Command picks the parallel runner when the parallel_tests capability is
// loaded. This reads process state, not the manifest, and is independent of
// Available.
func (c *RSpec) Command() string {
	if c.parallel() {
		return rspecParallelCommand
	}
	return rspecCommand
}
