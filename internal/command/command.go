// SPDX-License-Identifier: MPL-2.0

package command

// Environment variables and capabilities consulted by the built-in units.
const (
	// ValidateProjectEnv is set while the shamus project validator is running.
	// Test runners stay out of the way in that mode.
	ValidateProjectEnv = "VALIDATE_PROJECT"

	// CapabilityParallelTests marks the parallel_tests add-on as loaded.
	CapabilityParallelTests = "parallel_tests"
)

type (
	// Environment answers questions about the process environment.
	Environment interface {
		// IsSet reports whether the named variable is set.
		IsSet(name string) bool
	}

	// Dependencies answers questions about the project's declared gems and
	// the optional capabilities loaded into the current process.
	Dependencies interface {
		// Declares reports whether the manifest declares the named package.
		Declares(pkg string) bool
		// CapabilityLoaded reports whether the named capability is loaded.
		CapabilityLoaded(name string) bool
	}

	// Command is a single runnable unit.
	Command interface {
		// Name returns the unit name
		Name() string
		// Available returns whether the unit applies to the current project
		Available() bool
		// Command returns the shell invocation to run. Only meaningful after
		// Available returned true.
		Command() string
	}

	// unit carries the oracles shared by every built-in command.
	unit struct {
		env  Environment
		deps Dependencies
	}
)

func (u unit) validating() bool {
	return u.env.IsSet(ValidateProjectEnv)
}

func (u unit) declaresAny(pkgs ...string) bool {
	for _, pkg := range pkgs {
		if u.deps.Declares(pkg) {
			return true
		}
	}
	return false
}

func (u unit) parallel() bool {
	return u.deps.CapabilityLoaded(CapabilityParallelTests)
}
