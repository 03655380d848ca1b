// SPDX-License-Identifier: MPL-2.0

// Package runner executes the commands resolved by kender's units.
//
// Command strings are parsed and run by the embedded mvdan/sh interpreter,
// so kender behaves the same on every platform and never depends on the
// host's /bin/sh. External programs (bundle, rake) are still spawned as
// real processes, optionally attached to a pseudo-terminal.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/esjee/kender/internal/command"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrParse is wrapped by errors for command strings that are not valid shell.
var ErrParse = errors.New("invalid command line")

type (
	// Options configures a Runner.
	Options struct {
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Env is the command environment as KEY=VALUE pairs; nil means os.Environ().
		Env []string
		// Stdin, Stdout and Stderr default to the process streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// DryRun prints each command instead of running it.
		DryRun bool
		// TTY attaches external programs to a pseudo-terminal.
		TTY bool
		// Skip lists unit names never run when running every available unit.
		Skip []string
		// Logger receives progress; nil means log.Default().
		Logger *log.Logger
	}

	// Runner executes units from a command.Registry.
	Runner struct {
		opts   Options
		logger *log.Logger
	}

	// Result is the outcome of a single unit.
	Result struct {
		// Name is the unit name
		Name string
		// Command is the resolved command string
		Command string
		// ExitCode is the exit code of the command
		ExitCode int
		// Error is set when the command could not run at all
		Error error
		// Duration is the wall time spent running
		Duration time.Duration
		// DryRun is set when the command was only printed
		DryRun bool
	}

	// Report collects the results of a run in execution order.
	Report struct {
		Results []*Result
	}

	// FailedError is returned when at least one unit failed.
	FailedError struct {
		Failed []*Result
	}
)

// New creates a Runner, filling in defaults.
func New(opts Options) *Runner {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{opts: opts, logger: logger}
}

// Success returns true if the command executed successfully
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Error == nil
}

// Failed returns the unsuccessful results.
func (r *Report) Failed() []*Result {
	var failed []*Result
	for _, res := range r.Results {
		if !res.Success() {
			failed = append(failed, res)
		}
	}
	return failed
}

// ExitCode returns the first non-zero exit code, or 0.
func (r *Report) ExitCode() int {
	for _, res := range r.Results {
		if res.Error != nil && res.ExitCode == 0 {
			return 1
		}
		if res.ExitCode != 0 {
			return res.ExitCode
		}
	}
	return 0
}

// Error implements the error interface.
func (e *FailedError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for _, res := range e.Failed {
		names = append(names, res.Name)
	}
	return fmt.Sprintf("%d command(s) failed: %s", len(e.Failed), strings.Join(names, ", "))
}

// Select returns the units to run. With no names it returns every available
// unit not in the skip list. Named units must exist and be available; the
// skip list does not apply to them.
func (r *Runner) Select(reg *command.Registry, names ...string) ([]command.Command, error) {
	if len(names) == 0 {
		var selected []command.Command
		for _, c := range reg.Available() {
			if r.skips(c.Name()) {
				r.logger.Info("skipping", "command", c.Name(), "reason", "configured skip")
				continue
			}
			selected = append(selected, c)
		}
		return selected, nil
	}

	selected := make([]command.Command, 0, len(names))
	for _, name := range names {
		c, err := reg.GetAvailable(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, c)
	}
	return selected, nil
}

func (r *Runner) skips(name string) bool {
	for _, s := range r.opts.Skip {
		if s == name {
			return true
		}
	}
	return false
}

// Run selects units (see Select) and runs them one after another. Every
// unit runs even if an earlier one failed; cancellation of ctx stops the
// run. A run with failures returns the report and a *FailedError.
func (r *Runner) Run(ctx context.Context, reg *command.Registry, names ...string) (*Report, error) {
	selected, err := r.Select(reg, names...)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, c := range selected {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("run canceled: %w", err)
		}

		// Resolution happens here, after Select confirmed availability.
		res := r.Exec(ctx, c.Name(), c.Command())
		report.Results = append(report.Results, res)

		switch {
		case res.DryRun:
		case res.Success():
			r.logger.Info("passed", "command", res.Name, "took", res.Duration.Round(time.Millisecond))
		default:
			r.logger.Error("failed", "command", res.Name, "exit", res.ExitCode, "err", res.Error)
		}
	}

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("run canceled: %w", err)
	}
	if failed := report.Failed(); len(failed) > 0 {
		return report, &FailedError{Failed: failed}
	}
	return report, nil
}

// Exec runs a single command string through the embedded shell.
func (r *Runner) Exec(ctx context.Context, name, script string) *Result {
	res := &Result{Name: name, Command: script}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		res.ExitCode = 1
		res.Error = fmt.Errorf("%w: %w", ErrParse, err)
		return res
	}

	if r.opts.DryRun {
		res.DryRun = true
		fmt.Fprintf(r.opts.Stdout, "%s\n", script)
		return res
	}

	r.logger.Info("running", "command", name)
	r.logger.Debug("resolved", "command", name, "script", script, "dir", r.opts.Dir)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(r.opts.Env...)),
		interp.StdIO(r.opts.Stdin, r.opts.Stdout, r.opts.Stderr),
	}
	if r.opts.Dir != "" {
		opts = append(opts, interp.Dir(r.opts.Dir))
	}
	if r.opts.TTY {
		opts = append(opts, interp.ExecHandlers(r.ptyExecHandler))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		res.ExitCode = 1
		res.Error = fmt.Errorf("failed to create interpreter: %w", err)
		return res
	}

	start := time.Now()
	err = sh.Run(ctx, prog)
	res.Duration = time.Since(start)

	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			res.ExitCode = int(exitStatus)
			return res
		}
		res.ExitCode = 1
		res.Error = fmt.Errorf("command execution failed: %w", err)
	}
	return res
}
