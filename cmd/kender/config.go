// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/esjee/kender/internal/config"
	"github.com/esjee/kender/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `kender config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage kender configuration",
		Long: `Manage kender configuration.

User configuration is stored in:
  - Linux: ~/.config/kender/config.cue
  - macOS: ~/Library/Application Support/kender/config.cue
  - Windows: %APPDATA%\kender\config.cue

A project may add .kender.cue or .kender.toml at its root, which overrides
the user configuration. KENDER_* environment variables override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.showConfig(cmd)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default user configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.initConfig(cmd, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprint(app.stdout, config.GenerateCUE(app.currentConfig()))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(cmd *cobra.Command) error {
	res, err := a.LoadConfig(cmd.Context(), config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ProjectDir:     a.flags.dir,
	})
	if err != nil {
		return a.fail(cmd, err, 1)
	}
	cfg := res.Config

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	list := func(values []string) string {
		if len(values) == 0 {
			return SubtitleStyle.Render("(none)")
		}
		return valueStyle.Render(strings.Join(values, ", "))
	}

	fmt.Fprintln(a.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(a.stdout)

	if len(res.Files) == 0 {
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("Config files"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("Config files"))
		for _, f := range res.Files {
			fmt.Fprintf(a.stdout, "  - %s\n", f)
		}
	}
	fmt.Fprintln(a.stdout)

	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("capabilities"), list(cfg.Capabilities))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("skip"), list(cfg.Skip))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("dry_run"), valueStyle.Render(fmt.Sprintf("%v", cfg.DryRun)))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("tty"), valueStyle.Render(fmt.Sprintf("%v", cfg.TTY)))
	level := string(cfg.LogLevel)
	if level == "" {
		level = "(from ui.verbose)"
	}
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("log_level"), valueStyle.Render(level))

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(a.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(a.stdout, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))

	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(a.stdout, "  patterns: %s\n", list(cfg.Watch.Patterns))
	fmt.Fprintf(a.stdout, "  debounce: %s\n", valueStyle.Render(cfg.Watch.Debounce))

	return nil
}

func (a *App) initConfig(cmd *cobra.Command, force bool) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return a.fail(cmd, err, 1)
	}

	path, err := config.Save(config.DefaultConfig(), cfgDir, force)
	if errors.Is(err, os.ErrExist) {
		return a.fail(cmd, issue.NewErrorContext().
			WithOperation("create configuration").
			WithResource(path).
			WithSuggestion("Pass --force to overwrite it").
			Wrap(err).
			BuildError(), 1)
	}
	if err != nil {
		return a.fail(cmd, err, 1)
	}

	fmt.Fprintf(a.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render(iconPass), filepath.Clean(path))
	return nil
}
