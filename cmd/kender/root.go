// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/esjee/kender/internal/capability"
	"github.com/esjee/kender/internal/config"
	"github.com/esjee/kender/internal/environ"
	"github.com/esjee/kender/internal/issue"
	"github.com/esjee/kender/internal/project"
	"github.com/esjee/kender/internal/runner"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// App wires the CLI to its collaborators. Tests build one with their
	// own writers and environment.
	App struct {
		LoadConfig func(ctx context.Context, opts config.LoadOptions) (*config.Result, error)
		Env        *environ.Oracle
		stdout     io.Writer
		stderr     io.Writer

		flags  rootFlagValues
		cfg    *config.Config
		logger *log.Logger
	}

	// rootFlagValues holds the persistent flags shared by every subcommand.
	rootFlagValues struct {
		verbose      bool
		configPath   string
		dir          string
		capabilities []string
		dryRun       bool
		tty          bool
	}
)

// NewApp returns an App writing to the given streams. nil writers default
// to the process streams.
func NewApp(stdout, stderr io.Writer) *App {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &App{
		LoadConfig: config.LoadWithSources,
		Env:        environ.Process(),
		stdout:     stdout,
		stderr:     stderr,
		logger:     newLogger(stderr, log.InfoLevel),
	}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "kender",
		Level:  level,
	})
}

// newRootCommand builds the command tree. Running the root command alone is
// the same as `kender run`.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kender",
		Short: "Run the checks a Ruby project declares",
		Long: TitleStyle.Render("kender") + SubtitleStyle.Render(" - Run the checks a Ruby project declares") + `

kender reads the project's Gemfile, works out which test and audit
commands apply (rspec, cucumber, jasmine, brakeman, bundle-audit, shamus),
and runs them one after another.

` + SubtitleStyle.Render("Examples:") + `
  kender                         Run every available command
  kender run rspec               Run only rspec
  kender list                    Show what would run and how
  kender --capability parallel_tests
                                 Use parallel_tests runners
  VALIDATE_PROJECT=1 kender      Run project validation (shamus)`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: app.initRootConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runUnits(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default is the user config dir and the project's .kender.cue)")
	pf.StringVarP(&app.flags.dir, "dir", "C", ".", "project directory")
	pf.StringArrayVar(&app.flags.capabilities, "capability", nil, "load a capability such as parallel_tests (repeatable)")
	pf.BoolVar(&app.flags.dryRun, "dry-run", false, "print commands instead of running them")
	pf.BoolVar(&app.flags.tty, "tty", false, "run commands attached to a pseudo-terminal")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newWatchCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(os.Stdout, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads configuration and sets up logging before any
// subcommand runs.
func (a *App) initRootConfig(cmd *cobra.Command, _ []string) error {
	res, err := a.LoadConfig(cmd.Context(), config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ProjectDir:     a.flags.dir,
	})
	if err != nil {
		// An explicit --config must load. Otherwise fall back to defaults.
		if a.flags.configPath != "" {
			return a.fail(cmd, err, 1)
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		res = &config.Result{Config: config.DefaultConfig()}
	}
	a.cfg = res.Config

	if !a.flags.verbose {
		a.flags.verbose = a.cfg.UI.Verbose
	}
	a.logger = newLogger(a.stderr, a.logLevel())
	for _, f := range res.Files {
		a.logger.Debug("loaded config", "file", f)
	}
	return nil
}

func (a *App) logLevel() log.Level {
	if a.cfg != nil && a.cfg.LogLevel != "" {
		if lvl, err := log.ParseLevel(string(a.cfg.LogLevel)); err == nil {
			return lvl
		}
	}
	if a.flags.verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func (a *App) currentConfig() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// capabilities merges config, KENDER_CAPABILITIES and --capability flags.
func (a *App) capabilities() []string {
	caps := append([]string{}, a.currentConfig().Capabilities...)
	if v := a.Env.Get(capability.EnvVar); strings.TrimSpace(v) != "" {
		caps = append(caps, v)
	}
	return append(caps, a.flags.capabilities...)
}

func (a *App) openProject() (*project.Project, error) {
	p, err := project.Open(a.flags.dir, project.Options{
		Env:          a.Env,
		Capabilities: a.capabilities(),
		Logger:       a.logger,
	})
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("open project").
			WithResource(a.flags.dir).
			WithSuggestion("Pass the project root with --dir").
			Wrap(err).
			BuildError()
	}
	return p, nil
}

func (a *App) newRunner(p *project.Project) *runner.Runner {
	cfg := a.currentConfig()
	return runner.New(runner.Options{
		Dir:    p.Root(),
		Stdout: a.stdout,
		Stderr: a.stderr,
		DryRun: a.flags.dryRun || cfg.DryRun,
		TTY:    a.flags.tty || cfg.TTY,
		Skip:   cfg.Skip,
		Logger: a.logger,
	})
}

// fail renders err for the user and returns an ExitError so fang does not
// print it a second time.
func (a *App) fail(cmd *cobra.Command, err error, code int) error {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))
	if a.flags.verbose {
		a.renderIssue(err)
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code, Err: err}
}

// renderIssue prints the help page linked to err, if any.
func (a *App) renderIssue(err error) {
	page, ok := issue.IssueOf(err)
	if !ok {
		return
	}
	rendered, renderErr := page.Render(string(a.currentConfig().UI.ColorScheme))
	if renderErr != nil {
		a.logger.Warn("failed to render help page", "issue", page.Id(), "err", renderErr)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
