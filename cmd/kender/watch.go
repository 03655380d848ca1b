// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/esjee/kender/internal/issue"
	"github.com/esjee/kender/internal/runner"
	"github.com/esjee/kender/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [unit...]",
		Short: "Re-run units whenever project files change",
		Long: `Run the units once, then re-run them whenever a file matching
watch.patterns changes. A changed Gemfile is re-read before the next run, so
newly declared gems take effect without restarting. Stop with Ctrl+C.`,
		ValidArgsFunction: app.completeUnits,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.watchUnits(cmd, args)
		},
	}
}

func (a *App) watchUnits(cmd *cobra.Command, names []string) error {
	cfg := a.currentConfig()
	if a.flags.dryRun || cfg.DryRun {
		return a.fail(cmd, errors.New("watch and --dry-run cannot be used together"), 1)
	}

	debounce, err := cfg.Watch.DebounceDuration()
	if err != nil {
		return a.fail(cmd, err, 1)
	}

	p, err := a.openProject()
	if err != nil {
		return a.fail(cmd, err, 1)
	}
	rerun := watch.NewRerun(p, a.newRunner(p), a.logger, names...)
	reports := make(chan *runner.Report)
	rerun.Reports = reports
	go func() {
		for {
			select {
			case report := <-reports:
				a.printSummary(report)
			case <-cmd.Context().Done():
				return
			}
		}
	}()

	w, err := watch.New(watch.Config{
		Dir:      p.Root(),
		Patterns: cfg.Watch.Patterns,
		Debounce: debounce,
		OnChange: rerun.OnChange,
		Logger:   a.logger,
	})
	if err != nil {
		return a.fail(cmd, issue.NewErrorContext().
			WithOperation("start watcher").
			WithResource(p.Root()).
			WithSuggestion("Check the watch.patterns configuration").
			Wrap(err).
			BuildError(), 1)
	}

	fmt.Fprintf(a.stderr, "%s initial run\n", CmdStyle.Render("→"))
	if err := rerun.OnChange(cmd.Context(), nil); err != nil {
		// Keep watching: the user may fix the problem and save again.
		a.logger.Warn("initial run failed", "err", err)
	}
	fmt.Fprintf(a.stderr, "%s watching for changes (Ctrl+C to stop)\n", CmdStyle.Render("→"))

	return w.Run(cmd.Context())
}
