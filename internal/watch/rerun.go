// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"path"

	"github.com/esjee/kender/internal/project"
	"github.com/esjee/kender/internal/runner"

	"github.com/charmbracelet/log"
)

// Rerun re-runs units against a project after each batch of changes.
type Rerun struct {
	project *project.Project
	runner  *runner.Runner
	names   []string
	logger  *log.Logger

	// Reports receives the report of every completed run when non-nil.
	Reports chan<- *runner.Report
}

// NewRerun returns a Rerun that runs the named units, or every available
// unit when names is empty.
func NewRerun(p *project.Project, r *runner.Runner, logger *log.Logger, names ...string) *Rerun {
	if logger == nil {
		logger = log.Default()
	}
	return &Rerun{project: p, runner: r, names: names, logger: logger}
}

// OnChange is a ChangeFunc. A changed Gemfile is re-read first so units
// see the new declarations. Failing units are logged, not returned.
func (rr *Rerun) OnChange(ctx context.Context, changed []string) error {
	if TouchesGemfile(changed) {
		rr.logger.Info("Gemfile changed, reloading")
		rr.project.Reload()
	}
	rr.logger.Info("re-running", "changed", len(changed))

	report, err := rr.runner.Run(ctx, rr.project.Registry(), rr.names...)
	if report != nil && rr.Reports != nil {
		select {
		case rr.Reports <- report:
		case <-ctx.Done():
		}
	}

	var failed *runner.FailedError
	if errors.As(err, &failed) {
		rr.logger.Warn("run finished with failures", "failed", len(failed.Failed))
		return nil
	}
	return err
}

// TouchesGemfile reports whether the project's Gemfile is among changed.
func TouchesGemfile(changed []string) bool {
	for _, p := range changed {
		if path.Clean(p) == "Gemfile" {
			return true
		}
	}
	return false
}
