// SPDX-License-Identifier: MPL-2.0

// Package project gathers what kender knows about the project being checked:
// its Gemfile declarations, the process environment, and the capabilities
// enabled for this run. A Project is the dependency oracle handed to units.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/esjee/kender/internal/capability"
	"github.com/esjee/kender/internal/command"
	"github.com/esjee/kender/internal/environ"
	"github.com/esjee/kender/internal/gemfile"

	"github.com/charmbracelet/log"
)

type (
	// Options configures Open.
	Options struct {
		// Env is the environment oracle; nil means the process environment.
		Env command.Environment
		// Capabilities are loaded into the project's capability registry.
		// Entries may hold comma-separated lists.
		Capabilities []string
		// Logger receives diagnostics; nil means log.Default().
		Logger *log.Logger
	}

	// Project is a Ruby project rooted at a directory.
	Project struct {
		root   string
		env    command.Environment
		caps   *capability.Registry
		logger *log.Logger

		mu       sync.RWMutex
		manifest *gemfile.Manifest
		missing  bool
	}
)

// Open resolves root and reads its Gemfile. A missing or unreadable Gemfile
// is not an error: the project then declares nothing, and HasGemfile
// reports false for a missing file.
func Open(root string, opts Options) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open project: %s is not a directory", abs)
	}

	env := opts.Env
	if env == nil {
		env = environ.Process()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	caps := capability.NewRegistry()
	for _, entry := range opts.Capabilities {
		caps.Load(capability.ParseList(entry)...)
	}

	p := &Project{
		root:   abs,
		env:    env,
		caps:   caps,
		logger: logger,
	}
	p.loadManifest()
	return p, nil
}

func (p *Project) loadManifest() {
	m, err := gemfile.LoadDir(p.root)
	switch {
	case err == nil:
		p.logger.Debug("read Gemfile", "path", m.Path(), "gems", m.Len())
		p.setManifest(m, false)
	case errors.Is(err, os.ErrNotExist):
		p.logger.Warn("no Gemfile found, no gems are declared", "dir", p.root)
		p.setManifest(gemfile.Empty(), true)
	default:
		p.logger.Error("could not read Gemfile, no gems are declared", "err", err)
		p.setManifest(gemfile.Empty(), false)
	}
}

func (p *Project) setManifest(m *gemfile.Manifest, missing bool) {
	p.mu.Lock()
	p.manifest = m
	p.missing = missing
	p.mu.Unlock()
}

// Root returns the absolute project directory.
func (p *Project) Root() string {
	return p.root
}

// Env returns the environment oracle.
func (p *Project) Env() command.Environment {
	return p.env
}

// Capabilities returns the capability registry for this run.
func (p *Project) Capabilities() *capability.Registry {
	return p.caps
}

// Manifest returns the current Gemfile manifest.
func (p *Project) Manifest() *gemfile.Manifest {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.manifest
}

// HasGemfile reports whether a Gemfile was found.
func (p *Project) HasGemfile() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.missing
}

// Declares reports whether the Gemfile declares pkg.
func (p *Project) Declares(pkg string) bool {
	return p.Manifest().Declares(pkg)
}

// CapabilityLoaded reports whether the capability is enabled for this run.
func (p *Project) CapabilityLoaded(name string) bool {
	return p.caps.Loaded(name)
}

// Reload re-reads the Gemfile.
func (p *Project) Reload() {
	p.loadManifest()
}

// Registry returns the built-in units bound to this project.
func (p *Project) Registry() *command.Registry {
	return command.NewDefaultRegistry(p.env, p)
}
