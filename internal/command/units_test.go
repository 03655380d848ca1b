// SPDX-License-Identifier: MPL-2.0

package command

import "testing"

func TestUnits_Available(t *testing.T) {
	t.Parallel()

	validating := fakeEnv{ValidateProjectEnv: "1"}

	tests := []struct {
		name string
		cmd  Command
		want bool
	}{
		{"cucumber declared", NewCucumber(fakeEnv{}, newFakeDeps("cucumber")), true},
		{"cucumber in validation", NewCucumber(validating, newFakeDeps("cucumber")), false},
		{"cucumber missing", NewCucumber(fakeEnv{}, newFakeDeps("cucumber-rails")), false},
		{"jasmine declared", NewJasmine(fakeEnv{}, newFakeDeps("jasmine")), true},
		{"jasmine in validation", NewJasmine(validating, newFakeDeps("jasmine")), false},
		{"brakeman declared", NewBrakeman(fakeEnv{}, newFakeDeps("brakeman")), true},
		{"brakeman in validation", NewBrakeman(validating, newFakeDeps("brakeman")), true},
		{"brakeman missing", NewBrakeman(fakeEnv{}, newFakeDeps()), false},
		{"bundle_audit declared", NewBundleAudit(fakeEnv{}, newFakeDeps("bundler-audit")), true},
		{"bundle_audit wrong gem", NewBundleAudit(fakeEnv{}, newFakeDeps("bundle-audit")), false},
		{"shamus outside validation", NewShamus(fakeEnv{}, newFakeDeps("shamus")), false},
		{"shamus in validation", NewShamus(validating, newFakeDeps("shamus")), true},
		{"shamus undeclared", NewShamus(validating, newFakeDeps()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cmd.Available(); got != tt.want {
				t.Errorf("%s.Available() = %v, want %v", tt.cmd.Name(), got, tt.want)
			}
		})
	}
}

func TestCucumber_Command(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps("cucumber")
	c := NewCucumber(fakeEnv{}, deps)

	if got := c.Command(); got != "bundle exec cucumber" {
		t.Errorf("Command() = %q, want %q", got, "bundle exec cucumber")
	}

	deps.capabilities[CapabilityParallelTests] = true
	if got := c.Command(); got != "bundle exec rake parallel:features" {
		t.Errorf("Command() = %q, want %q", got, "bundle exec rake parallel:features")
	}
}

func TestUnits_StaticCommands(t *testing.T) {
	t.Parallel()

	deps := newFakeDeps()
	deps.capabilities[CapabilityParallelTests] = true

	tests := []struct {
		cmd  Command
		want string
	}{
		{NewJasmine(fakeEnv{}, deps), "bundle exec rake jasmine:ci"},
		{NewBrakeman(fakeEnv{}, deps), "bundle exec brakeman --quiet --exit-on-warn"},
		{NewBundleAudit(fakeEnv{}, deps), "bundle exec bundle-audit check --update"},
		{NewShamus(fakeEnv{}, deps), "bundle exec shamus"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Command(); got != tt.want {
			t.Errorf("%s.Command() = %q, want %q", tt.cmd.Name(), got, tt.want)
		}
	}
}
