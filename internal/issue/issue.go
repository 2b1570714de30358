// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a Markdown remediation guide.
type Id int

const (
	MissingInterpreterId Id = iota + 1
	ConfigLoadFailedId
	LaunchFailedId
)

type (
	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide for a terminal using the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(style string) (string, error) {
	md := string(i.mdMsg)
	if links := i.ExtLinks(); len(links) > 0 {
		md += "\n\n## See also\n"
		for _, link := range links {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, style)
}

var (
	render = glamour.Render

	missingInterpreterIssue = &Issue{
		id: MissingInterpreterId,
		mdMsg: `
# Virtual environment not found

The launcher runs ` + "`connect_and_price.py`" + ` with the Python interpreter of the
virtual environment that lives next to it, and that interpreter is missing.

## Things you can try
- Create the virtual environment next to the launcher:
~~~
$ python3 -m venv venv
~~~
- Install the project requirements into it:
~~~
$ venv/bin/pip install -r requirements.txt
~~~
- If the environment lives elsewhere, point ` + "`venv.dir`" + ` in ` + "`launcher.cue`" + `
  (or ` + "`QETE_LAUNCHER_VENV_DIR`" + `) at it.`,
		extLinks: []HttpLink{"https://docs.python.org/3/library/venv.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load launcher configuration

` + "`launcher.cue`" + ` is optional. When present it must match this shape:

~~~cue
venv: {
	dir:         "venv"
	interpreter: "bin/python3"
}
target: script: "connect_and_price.py"
exec: {
	mode:      "spawn" // or "replace"
	env_files: [".env?"]
}
ui: {
	verbose: false
	dry_run: false
}
~~~

## Things you can try
- Remove the file to fall back to the defaults
- Check the field named in the error above for a typo`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to start the interpreter

The interpreter file exists but the operating system refused to run it.

## Things you can try
- Make sure it is executable:
~~~
$ chmod +x venv/bin/python3
~~~
- Recreate the environment if it was copied from another machine:
~~~
$ rm -rf venv && python3 -m venv venv
~~~`,
	}

	issues = map[Id]*Issue{
		missingInterpreterIssue.Id(): missingInterpreterIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		launchFailedIssue.Id():       launchFailedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
