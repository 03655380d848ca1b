// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/esjee/kender/internal/environ"
	"github.com/esjee/kender/internal/project"
	"github.com/esjee/kender/internal/runner"
	"github.com/esjee/kender/internal/testutil"
)

func TestTouchesGemfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		changed []string
		want    bool
	}{
		{[]string{"Gemfile"}, true},
		{[]string{"spec/a_spec.rb", "./Gemfile"}, true},
		{[]string{"Gemfile.lock"}, false},
		{[]string{"engines/blog/Gemfile"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := TouchesGemfile(tt.changed); got != tt.want {
			t.Errorf("TouchesGemfile(%v) = %v, want %v", tt.changed, got, tt.want)
		}
	}
}

func TestRerun_ReloadsGemfile(t *testing.T) {
	t.Parallel()

	root := testutil.WriteProject(t, map[string]string{"Gemfile": "gem 'rspec'\n"})
	p, err := project.Open(root, project.Options{Env: environ.FromMap(nil), Logger: quiet})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	var stdout bytes.Buffer
	r := runner.New(runner.Options{
		Dir:    root,
		DryRun: true,
		Stdout: &stdout,
		Stderr: io.Discard,
		Logger: quiet,
	})

	reports := make(chan *runner.Report, 2)
	rr := NewRerun(p, r, quiet)
	rr.Reports = reports

	if err := rr.OnChange(context.Background(), []string{"spec/user_spec.rb"}); err != nil {
		t.Fatalf("OnChange() error = %v", err)
	}
	if got := stdout.String(); got != "bundle exec rspec[^spec/integration]\n" {
		t.Errorf("first run printed %q", got)
	}
	if rep := <-reports; len(rep.Results) != 1 {
		t.Errorf("first report has %d results, want 1", len(rep.Results))
	}

	if err := os.WriteFile(filepath.Join(root, "Gemfile"), []byte("gem 'rspec'\ngem 'cucumber'\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	stdout.Reset()

	if err := rr.OnChange(context.Background(), []string{"Gemfile"}); err != nil {
		t.Fatalf("OnChange() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "bundle exec cucumber\n") {
		t.Errorf("second run printed %q, want cucumber after reload", stdout.String())
	}
	if rep := <-reports; len(rep.Results) != 2 {
		t.Errorf("second report has %d results, want 2", len(rep.Results))
	}
}

func TestRerun_FailuresAreNotErrors(t *testing.T) {
	t.Parallel()

	root := testutil.WriteProject(t, map[string]string{"Gemfile": "gem 'rspec'\n"})
	p, err := project.Open(root, project.Options{Env: environ.FromMap(nil), Logger: quiet})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// An empty PATH makes bundle unresolvable, so the unit fails.
	r := runner.New(runner.Options{
		Dir:    root,
		Env:    []string{"PATH="},
		Stdout: io.Discard,
		Stderr: io.Discard,
		Logger: quiet,
	})

	if err := NewRerun(p, r, quiet).OnChange(context.Background(), []string{"spec/a_spec.rb"}); err != nil {
		t.Errorf("OnChange() error = %v, want nil for failing units", err)
	}
}
