// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/esjee/kender/internal/command"
	"github.com/esjee/kender/internal/gemfile"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	var gems bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every unit and how it resolves for this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.listUnits(cmd, gems)
		},
	}
	listCmd.Flags().BoolVar(&gems, "gems", false, "also list the gems declared in the Gemfile with their groups")
	return listCmd
}

func (a *App) listUnits(cmd *cobra.Command, gems bool) error {
	p, err := a.openProject()
	if err != nil {
		return a.fail(cmd, err, 1)
	}
	reg := p.Registry()
	cfg := a.currentConfig()

	fmt.Fprintln(a.stdout, TitleStyle.Render("Units")+SubtitleStyle.Render(" in "+p.Root()))
	if !p.HasGemfile() {
		fmt.Fprintln(a.stdout, WarningStyle.Render("  no Gemfile found"))
	}
	if a.Env.IsSet(command.ValidateProjectEnv) {
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("  project validation mode ("+command.ValidateProjectEnv+" is set)"))
	}
	if caps := p.Capabilities().Names(); len(caps) > 0 {
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("  capabilities: "+strings.Join(caps, ", ")))
	}
	fmt.Fprintln(a.stdout)

	for _, c := range reg.All() {
		switch {
		case !c.Available():
			fmt.Fprintf(a.stdout, "  %s %s %s\n", SubtitleStyle.Render(iconOff), nameColumnStyle.Render(c.Name()),
				SubtitleStyle.Render("not applicable"))
		case cfg.Skips(c.Name()):
			fmt.Fprintf(a.stdout, "  %s %s %s %s\n", WarningStyle.Render(iconSkip), nameColumnStyle.Render(c.Name()),
				c.Command(), WarningStyle.Render("(skipped)"))
		default:
			fmt.Fprintf(a.stdout, "  %s %s %s\n", SuccessStyle.Render(iconPass), nameColumnStyle.Render(c.Name()), c.Command())
		}
	}

	if gems && p.HasGemfile() {
		a.listGems(p.Manifest())
	}
	return nil
}

func (a *App) listGems(m *gemfile.Manifest) {
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, TitleStyle.Render("Gems")+SubtitleStyle.Render(fmt.Sprintf(" (%d declared)", m.Len())))
	for _, name := range m.Names() {
		g, _ := m.Gem(name)
		groups := "default"
		if len(g.Groups) > 0 {
			groups = strings.Join(g.Groups, ", ")
		}
		fmt.Fprintf(a.stdout, "  %s %s\n", nameColumnStyle.Render(g.Name), SubtitleStyle.Render(groups))
	}
}
