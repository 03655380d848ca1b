// SPDX-License-Identifier: MPL-2.0

package command

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubCommand is a minimal Command used to exercise the registry.
type stubCommand struct {
	name      string
	available bool
	command   string
	resolved  int
}

func (s *stubCommand) Name() string    { return s.name }
func (s *stubCommand) Available() bool { return s.available }
func (s *stubCommand) Command() string {
	s.resolved++
	return s.command
}

func names(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Name())
	}
	return out
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry(fakeEnv{}, newFakeDeps())
	want := []string{"brakeman", "bundle_audit", "cucumber", "jasmine", "rspec", "shamus"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&stubCommand{name: "lint"})

	c, err := r.Get("lint")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if c.Name() != "lint" {
		t.Errorf("Get() returned %q, want %q", c.Name(), "lint")
	}

	_, err = r.Get("missing")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrCommandNotFound", err)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(&stubCommand{name: "lint", command: "old"})
	r.Register(&stubCommand{name: "lint", command: "new", available: true})

	got, err := r.Resolve("lint")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "new" {
		t.Errorf("Resolve() = %q, want %q", got, "new")
	}
	if len(r.Names()) != 1 {
		t.Errorf("Names() = %v, want a single entry", r.Names())
	}
}

func TestRegistry_AvailableIsReevaluated(t *testing.T) {
	t.Parallel()

	env := fakeEnv{}
	deps := newFakeDeps("rspec")
	r := NewDefaultRegistry(env, deps)

	if diff := cmp.Diff([]string{"rspec"}, names(r.Available())); diff != "" {
		t.Errorf("Available() mismatch (-want +got):\n%s", diff)
	}

	deps.gems["brakeman"] = true
	deps.gems["shamus"] = true
	if diff := cmp.Diff([]string{"brakeman", "rspec"}, names(r.Available())); diff != "" {
		t.Errorf("Available() after adding gems mismatch (-want +got):\n%s", diff)
	}

	env[ValidateProjectEnv] = "1"
	if diff := cmp.Diff([]string{"brakeman", "shamus"}, names(r.Available())); diff != "" {
		t.Errorf("Available() in validation mode mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	off := &stubCommand{name: "off", command: "false"}
	on := &stubCommand{name: "on", available: true, command: "true"}

	r := NewRegistry()
	r.Register(off)
	r.Register(on)

	got, err := r.Resolve("on")
	if err != nil {
		t.Fatalf("Resolve(on) error = %v", err)
	}
	if got != "true" {
		t.Errorf("Resolve(on) = %q, want %q", got, "true")
	}

	if _, err := r.Resolve("off"); !errors.Is(err, ErrCommandUnavailable) {
		t.Errorf("Resolve(off) error = %v, want ErrCommandUnavailable", err)
	}
	if off.resolved != 0 {
		t.Errorf("unavailable command was resolved %d times", off.resolved)
	}

	if _, err := r.Resolve("nope"); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Resolve(nope) error = %v, want ErrCommandNotFound", err)
	}
}

func TestRegistry_GetAvailable(t *testing.T) {
	t.Parallel()

	off := &stubCommand{name: "off", command: "false"}
	on := &stubCommand{name: "on", available: true, command: "true"}

	r := NewRegistry()
	r.Register(off)
	r.Register(on)

	c, err := r.GetAvailable("on")
	if err != nil {
		t.Fatalf("GetAvailable(on) error = %v", err)
	}
	if c.Name() != "on" {
		t.Errorf("GetAvailable(on) = %q", c.Name())
	}
	if on.resolved != 0 {
		t.Errorf("GetAvailable() resolved the command %d times, want 0", on.resolved)
	}

	if _, err := r.GetAvailable("off"); !errors.Is(err, ErrCommandUnavailable) {
		t.Errorf("GetAvailable(off) error = %v, want ErrCommandUnavailable", err)
	}
	if _, err := r.GetAvailable("nope"); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("GetAvailable(nope) error = %v, want ErrCommandNotFound", err)
	}
}

func TestRegistry_ResolveRSpec(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps("rspec-rails")
	r := NewDefaultRegistry(fakeEnv{}, deps)

	got, err := r.Resolve("rspec")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != rspecCommand {
		t.Errorf("Resolve() = %q, want %q", got, rspecCommand)
	}

	deps.capabilities[CapabilityParallelTests] = true
	got, err = r.Resolve("rspec")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != rspecParallelCommand {
		t.Errorf("Resolve() = %q, want %q", got, rspecParallelCommand)
	}
}
