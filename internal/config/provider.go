// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLoadOptions is returned when LoadOptions contains whitespace-only paths.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the user config directory lookup when set.
		ConfigDirPath string
		// ProjectDir is searched for .kender.cue / .kender.toml when set.
		ProjectDir string
	}

	// Result is a loaded configuration and the files it came from.
	Result struct {
		Config *Config
		Files  []string
	}
)

// Validate rejects whitespace-only paths, which usually mean a broken flag
// or environment expansion.
func (o LoadOptions) Validate() error {
	var errs []error
	check := func(field, value string) {
		if value != "" && strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s: whitespace-only path", field))
		}
	}
	check("config file", o.ConfigFilePath)
	check("config dir", o.ConfigDirPath)
	check("project dir", o.ProjectDir)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidLoadOptions, errors.Join(errs...))
}

// LoadWithSources loads configuration and reports which files were merged.
func LoadWithSources(ctx context.Context, opts LoadOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg, files, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Config: cfg, Files: files}, nil
}
