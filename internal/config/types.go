// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LogLevelDebug logs resolution decisions and shell commands.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs each command as it runs.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs skipped and failed commands only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	defaultWatchDebounce = "500ms"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDebounce is returned when watch.debounce is not a positive duration.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

type (
	// LogLevel is the minimum level kender logs at.
	LogLevel string

	// ColorScheme selects the glamour style used for help pages.
	ColorScheme string

	// Config is the kender configuration.
	Config struct {
		// Capabilities are loaded into the process before units are queried.
		Capabilities []string `json:"capabilities" mapstructure:"capabilities" toml:"capabilities"`
		// Skip lists unit names that never run.
		Skip []string `json:"skip" mapstructure:"skip" toml:"skip"`
		// DryRun prints resolved commands instead of running them.
		DryRun bool `json:"dry_run" mapstructure:"dry_run" toml:"dry_run"`
		// TTY runs commands attached to a pseudo-terminal.
		TTY bool `json:"tty" mapstructure:"tty" toml:"tty"`
		// LogLevel overrides the level implied by UI.Verbose.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level" toml:"log_level"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
		// Watch configures `kender watch`.
		Watch WatchConfig `json:"watch" mapstructure:"watch" toml:"watch"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		// Patterns are doublestar globs, relative to the project root.
		Patterns []string `json:"patterns" mapstructure:"patterns" toml:"patterns"`
		// Debounce is a Go duration string.
		Debounce string `json:"debounce" mapstructure:"debounce" toml:"debounce"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Capabilities: []string{},
		Skip:         []string{},
		LogLevel:     "",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Watch: WatchConfig{
			Patterns: DefaultWatchPatterns(),
			Debounce: defaultWatchDebounce,
		},
	}
}

// DefaultWatchPatterns returns the files watch mode reacts to by default.
func DefaultWatchPatterns() []string {
	return []string{
		"Gemfile",
		"Gemfile.lock",
		"app/**/*.rb",
		"lib/**/*.rb",
		"spec/**/*.rb",
		"features/**/*",
		"config/**/*.rb",
	}
}

// Validate returns nil if the LogLevel is empty or recognized.
func (l LogLevel) Validate() error {
	switch l {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, string(l))
	}
}

// Validate returns nil if the ColorScheme is recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: auto, dark, light)", ErrInvalidColorScheme, string(c))
	}
}

// DebounceDuration parses Watch.Debounce.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDebounce, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidDebounce, w.Debounce)
	}
	return d, nil
}

// Validate checks constraints the schema cannot express.
func (c *Config) Validate() error {
	var errs []error
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Watch.DebounceDuration(); err != nil {
		errs = append(errs, err)
	}
	for i, name := range c.Skip {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("skip[%d]: empty command name", i))
		}
	}
	return errors.Join(errs...)
}

// Skips reports whether the named unit is in the skip list.
func (c *Config) Skips(name string) bool {
	for _, s := range c.Skip {
		if s == name {
			return true
		}
	}
	return false
}
