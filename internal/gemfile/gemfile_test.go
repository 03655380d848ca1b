// SPDX-License-Identifier: MPL-2.0

package gemfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const railsGemfile = `source 'https://rubygems.org'
git_source(:github) { |repo| "https://github.com/#{repo}.git" }

ruby '3.2.2'

gem 'rails', '~> 7.1.0'
gem "pg", ">= 0.18", "< 2.0" # database
gem('puma', '~> 6.0')
gemspec

# gem 'commented-out'

group :development, :test do
  gem 'rspec-rails', '~> 6.0'
  gem 'parallel_tests'
end

group :test do
  gem 'cucumber-rails', require: false
  if ENV['WITH_AUDIT']
    gem 'bundler-audit'
  end
  gem "simplecov"
end

platforms :jruby do
  gem 'activerecord-jdbc-adapter'
end

gem 'brakeman', group: :development
gem 'jasmine', :groups => [:development, :test]
`

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := Parse(strings.NewReader(railsGemfile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{
		"activerecord-jdbc-adapter",
		"brakeman",
		"bundler-audit",
		"cucumber-rails",
		"jasmine",
		"parallel_tests",
		"pg",
		"puma",
		"rails",
		"rspec-rails",
		"simplecov",
	}
	if diff := cmp.Diff(want, m.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"commented-out", "rspec", "gemspec", "github"} {
		if m.Declares(name) {
			t.Errorf("Declares(%q) = true, want false", name)
		}
	}
}

func TestParse_Groups(t *testing.T) {
	t.Parallel()

	m, err := Parse(strings.NewReader(railsGemfile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		gem  string
		want []string
	}{
		{"rails", nil},
		{"rspec-rails", []string{"development", "test"}},
		{"bundler-audit", []string{"test"}},
		{"simplecov", []string{"test"}},
		{"activerecord-jdbc-adapter", nil},
		{"brakeman", []string{"development"}},
		{"jasmine", []string{"development", "test"}},
	}
	for _, tt := range tests {
		g, ok := m.Gem(tt.gem)
		if !ok {
			t.Errorf("Gem(%q) not found", tt.gem)
			continue
		}
		if diff := cmp.Diff(tt.want, g.Groups); diff != "" {
			t.Errorf("Gem(%q).Groups mismatch (-want +got):\n%s", tt.gem, diff)
		}
	}
}

func TestParse_UnbalancedEnd(t *testing.T) {
	t.Parallel()

	m, err := Parse(strings.NewReader("end\nend\ngem 'rspec'\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !m.Declares("rspec") {
		t.Error("Declares(rspec) = false, want true")
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadDir(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadDir() error = %v, want os.ErrNotExist", err)
	}
}

func TestManifest_Reload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("gem 'rails'\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Path() != path {
		t.Errorf("Path() = %q, want %q", m.Path(), path)
	}
	if m.Declares("rspec") {
		t.Fatal("Declares(rspec) = true before it was added")
	}

	if err := os.WriteFile(path, []byte("gem 'rails'\ngem 'rspec'\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !m.Declares("rspec") {
		t.Error("Declares(rspec) = false after reload")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := m.Reload(); err == nil {
		t.Error("Reload() error = nil for a removed file")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d after failed reload, want previous contents kept", m.Len())
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	m := Empty()
	if m.Declares("rspec") || m.Len() != 0 {
		t.Error("Empty() manifest declares something")
	}
	if err := m.Reload(); err == nil {
		t.Error("Reload() on a manifest without a file should fail")
	}
}
