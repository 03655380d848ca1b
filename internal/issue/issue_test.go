// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		GemfileNotFoundId,
		CommandNotFoundId,
		CommandUnavailableId,
		NoCommandsAvailableId,
		CommandFailedId,
		CommandParseFailedId,
		ConfigLoadFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true

		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if GemfileNotFoundId != 1 {
		t.Errorf("GemfileNotFoundId = %d, want 1", GemfileNotFoundId)
	}
}

func TestValues_Ordered(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_EveryIssueHasDocs(t *testing.T) {
	for _, i := range Values() {
		if len(i.DocLinks()) == 0 {
			t.Errorf("issue %d has no doc links", i.Id())
		}
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", i.Id())
		}
	}
}

func TestIssue_DocLinksIsClone(t *testing.T) {
	i := Get(GemfileNotFoundId)
	links := i.DocLinks()
	links[0] = "changed"
	if i.DocLinks()[0] == "changed" {
		t.Error("DocLinks() exposed internal slice")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	defer func() { render = original }()

	var gotMd, gotStyle string
	render = func(in, style string) (string, error) {
		gotMd, gotStyle = in, style
		return "rendered", nil
	}

	out, err := Get(GemfileNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q, want %q", out, "rendered")
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want %q", gotStyle, "dark")
	}
	if !strings.Contains(gotMd, "No Gemfile found") || !strings.Contains(gotMd, "See also") {
		t.Errorf("markdown missing expected sections:\n%s", gotMd)
	}
	if !strings.Contains(gotMd, "bundler.io") {
		t.Error("markdown missing external link")
	}
}

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "run rspec"},
			want: "failed to run rspec",
		},
		{
			name: "with resource and cause",
			err: &ActionableError{
				Operation: "read Gemfile",
				Resource:  "./Gemfile",
				Cause:     errors.New("permission denied"),
			},
			want: "failed to read Gemfile: ./Gemfile: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	root := errors.New("exit status 1")
	err := NewErrorContext().
		WithOperation("run rspec").
		WithSuggestion("Run bundle install").
		WithSuggestion("Retry with --verbose").
		Wrap(errors.Join(root)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "• Run bundle install") || !strings.Contains(short, "• Retry with --verbose") {
		t.Errorf("Format(false) missing suggestions:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Errorf("Format(false) should not include the chain:\n%s", short)
	}

	long := err.Format(true)
	if !strings.Contains(long, "Error chain:") || !strings.Contains(long, "1. exit status 1") {
		t.Errorf("Format(true) missing error chain:\n%s", long)
	}
}

func TestErrorContext_Build(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return an untyped nil")
	}

	cause := errors.New("boom")
	err := NewErrorContext().WithOperation("load configuration").Wrap(cause).BuildError()
	if !errors.Is(err, cause) {
		t.Error("BuildError() result does not unwrap to its cause")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As() = false, want *ActionableError")
	}
	if ae.Operation != "load configuration" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "load configuration")
	}
}

func TestIssueOf(t *testing.T) {
	inner := NewErrorContext().
		WithOperation("read Gemfile").
		WithIssue(GemfileNotFoundId).
		Wrap(errors.New("not found")).
		BuildError()
	outer := NewErrorContext().WithOperation("open project").Wrap(inner).BuildError()

	got, ok := IssueOf(outer)
	if !ok {
		t.Fatal("IssueOf() found no issue")
	}
	if got.Id() != GemfileNotFoundId {
		t.Errorf("IssueOf() = %d, want %d", got.Id(), GemfileNotFoundId)
	}

	if _, ok := IssueOf(errors.New("plain")); ok {
		t.Error("IssueOf(plain error) = true, want false")
	}
}
