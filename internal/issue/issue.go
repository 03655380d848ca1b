// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	GemfileNotFoundId Id = iota + 1
	CommandNotFoundId
	CommandUnavailableId
	NoCommandsAvailableId
	CommandFailedId
	CommandParseFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const docsURL HttpLink = "https://github.com/esjee/kender#readme"

var (
	render = glamour.Render

	gemfileNotFoundIssue = &Issue{
		id:       GemfileNotFoundId,
		docLinks: []HttpLink{docsURL},
		extLinks: []HttpLink{"https://bundler.io/guides/gemfile.html"},
		mdMsg: `
# No Gemfile found!

kender decides which checks to run from the gems your project declares,
and it could not find a Gemfile in the project directory.

## Things you can try:
- Run kender from the root of your Ruby project
- Point kender at the project explicitly:
~~~
$ kender -C path/to/project
~~~
- Create a Gemfile:
~~~
$ bundle init
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id:       CommandNotFoundId,
		docLinks: []HttpLink{docsURL},
		mdMsg: `
# Unknown command!

There is no kender command with that name.

## Things you can try:
- List the known commands:
~~~
$ kender list
~~~
- Check the spelling; names use underscores (e.g. ` + "`bundle_audit`" + `)`,
	}

	commandUnavailableIssue = &Issue{
		id:       CommandUnavailableId,
		docLinks: []HttpLink{docsURL},
		mdMsg: `
# Command does not apply to this project!

The command exists but its gem is not declared in your Gemfile, or the
environment suppresses it.

## Things you can try:
- Add the gem to your Gemfile (e.g. ` + "`gem 'rspec-rails'`" + `)
- Test runners stay quiet while ` + "`VALIDATE_PROJECT`" + ` is set; unset it:
~~~
$ unset VALIDATE_PROJECT
~~~`,
	}

	noCommandsAvailableIssue = &Issue{
		id:       NoCommandsAvailableId,
		docLinks: []HttpLink{docsURL},
		mdMsg: `
# Nothing to run!

None of kender's commands apply to this project.

## Things you can try:
- Check which commands kender knows and why they were skipped:
~~~
$ kender list
~~~
- Declare a supported gem (rspec, rspec-rails, cucumber, jasmine, brakeman,
  bundler-audit, shamus) in your Gemfile`,
	}

	commandFailedIssue = &Issue{
		id:       CommandFailedId,
		docLinks: []HttpLink{docsURL},
		mdMsg: `
# A check failed!

One or more commands exited with a non-zero status.

## Things you can try:
- Re-run only the failing command:
~~~
$ kender run rspec
~~~
- Run with ` + "`--verbose`" + ` to see the resolved command lines
- Make sure ` + "`bundle install`" + ` has been run`,
	}

	commandParseFailedIssue = &Issue{
		id:       CommandParseFailedId,
		docLinks: []HttpLink{docsURL},
		mdMsg: `
# Could not parse a command line!

The resolved command is not valid POSIX shell.

## Things you can try:
- Run with ` + "`--dry-run`" + ` to print the command without executing it
- Report the command and its output as a bug`,
	}

	configLoadFailedIssue = &Issue{
		id:       ConfigLoadFailedId,
		docLinks: []HttpLink{docsURL},
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
		mdMsg: `
# Failed to load configuration!

kender could not read its configuration file.

## Things you can try:
- Check the file for CUE or TOML syntax errors
- Print the effective configuration:
~~~
$ kender config show
~~~
- Write a fresh default file:
~~~
$ kender config init
~~~`,
	}

	issues = map[Id]*Issue{
		gemfileNotFoundIssue.Id():     gemfileNotFoundIssue,
		commandNotFoundIssue.Id():     commandNotFoundIssue,
		commandUnavailableIssue.Id():  commandUnavailableIssue,
		noCommandsAvailableIssue.Id(): noCommandsAvailableIssue,
		commandFailedIssue.Id():       commandFailedIssue,
		commandParseFailedIssue.Id():  commandParseFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range maps.Values(issues) {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
