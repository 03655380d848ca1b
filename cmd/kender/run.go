// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/esjee/kender/internal/command"
	"github.com/esjee/kender/internal/issue"
	"github.com/esjee/kender/internal/runner"

	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run [unit...]",
		Short: "Run every available unit, or only the named ones",
		Long: `Run every unit that applies to the project, in name order, or only the
named units. Every unit runs even if an earlier one fails; kender exits with
the first failing unit's exit code.`,
		ValidArgsFunction: app.completeUnits,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runUnits(cmd, args)
		},
	}
}

func (a *App) runUnits(cmd *cobra.Command, names []string) error {
	p, err := a.openProject()
	if err != nil {
		return a.fail(cmd, err, 1)
	}
	reg := p.Registry()

	if len(names) == 0 && len(reg.Available()) == 0 {
		warn := issue.NewErrorContext().
			WithOperation("select commands").
			WithResource(p.Root()).
			WithIssue(issue.NoCommandsAvailableId).
			WithSuggestion("Declare rspec, cucumber, jasmine, brakeman or bundler-audit in the Gemfile").
			WithSuggestion("Run 'kender list' to see why each command is unavailable").
			Wrap(errors.New("no commands apply to this project")).
			Build()
		if !p.HasGemfile() {
			warn.Issue = issue.GemfileNotFoundId
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+warn.Format(a.flags.verbose))
		if a.flags.verbose {
			a.renderIssue(warn)
		}
		return nil
	}

	report, err := a.newRunner(p).Run(cmd.Context(), reg, names...)
	if report != nil {
		a.printSummary(report)
	}

	var failed *runner.FailedError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &failed):
		id := issue.CommandFailedId
		for _, res := range failed.Failed {
			if errors.Is(res.Error, runner.ErrParse) {
				id = issue.CommandParseFailedId
			}
		}
		return a.fail(cmd, issue.NewErrorContext().
			WithOperation("run commands").
			WithIssue(id).
			WithSuggestion("Re-run a single command with 'kender run <name>'").
			Wrap(err).
			BuildError(), report.ExitCode())
	case errors.Is(err, command.ErrCommandNotFound):
		return a.fail(cmd, issue.NewErrorContext().
			WithOperation("select commands").
			WithIssue(issue.CommandNotFoundId).
			WithSuggestion("Run 'kender list' to see the known commands").
			Wrap(err).
			BuildError(), 1)
	case errors.Is(err, command.ErrCommandUnavailable):
		return a.fail(cmd, issue.NewErrorContext().
			WithOperation("select commands").
			WithIssue(issue.CommandUnavailableId).
			WithSuggestion("Run 'kender list' to see which commands apply").
			Wrap(err).
			BuildError(), 1)
	default:
		return a.fail(cmd, err, 1)
	}
}

func (a *App) printSummary(report *runner.Report) {
	if len(report.Results) == 0 {
		return
	}
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, TitleStyle.Render("Summary"))
	for _, res := range report.Results {
		switch {
		case res.DryRun:
			fmt.Fprintf(a.stderr, "  %s %s\n", SubtitleStyle.Render(iconSkip), nameColumnStyle.Render(res.Name))
		case res.Success():
			fmt.Fprintf(a.stderr, "  %s %s %s\n", SuccessStyle.Render(iconPass), nameColumnStyle.Render(res.Name),
				SubtitleStyle.Render(res.Duration.Round(time.Millisecond).String()))
		case res.Error != nil:
			fmt.Fprintf(a.stderr, "  %s %s %s\n", ErrorStyle.Render(iconFail), nameColumnStyle.Render(res.Name),
				SubtitleStyle.Render(res.Error.Error()))
		default:
			fmt.Fprintf(a.stderr, "  %s %s %s\n", ErrorStyle.Render(iconFail), nameColumnStyle.Render(res.Name),
				SubtitleStyle.Render(fmt.Sprintf("exit %d", res.ExitCode)))
		}
	}
}

// completeUnits completes unit names for `run` and `watch`.
func (a *App) completeUnits(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	p, err := a.openProject()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, c := range p.Registry().Available() {
		if !slices.Contains(args, c.Name()) {
			names = append(names, c.Name())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
