// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/kalshi-qete/launcher/internal/layout"
	"github.com/kalshi-qete/launcher/internal/runtime"

	"mvdan.cc/sh/v3/syntax"
)

// dryRunPlan is everything the launcher would do, minus doing it.
type dryRunPlan struct {
	Layout     *layout.Layout
	Mode       runtime.RuntimeType
	Args       []string
	ConfigPath string
	ExtraEnv   map[string]string
}

// renderDryRun prints the resolved plan without executing. Dotenv values are
// never printed, only their keys.
func renderDryRun(w io.Writer, p dryRunPlan) error {
	argv := append([]string{p.Layout.Interpreter}, p.Layout.Argv(p.Args)...)
	cmdline, err := quoteCommand(argv)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Launcher:"), getVersionString())
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Directory:"), p.Layout.ScriptDir)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Interpreter:"), p.Layout.Interpreter)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Target:"), p.Layout.Target)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Mode:"), string(p.Mode))
	fmt.Fprintf(w, "  %s %d\n", LabelStyle.Render("Arguments:"), len(p.Args))
	if p.ConfigPath != "" {
		fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Config:"), p.ConfigPath)
	}

	if len(p.ExtraEnv) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, LabelStyle.Render("  Environment (from env files):"))
		for _, k := range slices.Sorted(maps.Keys(p.ExtraEnv)) {
			fmt.Fprintf(w, "    %s\n", k)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, LabelStyle.Render("  Command:"))
	fmt.Fprintf(w, "    %s\n", CmdStyle.Render(cmdline))
	fmt.Fprintln(w)
	return nil
}

// quoteCommand renders argv as a bash command line that would reproduce it.
func quoteCommand(argv []string) (string, error) {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}
