// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kalshi-qete/launcher/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// argTerminator is prepended to the process arguments before cobra sees them.
// With flag parsing disabled cobra still scans arguments for subcommand names
// (its hidden shell-completion command among them); a leading "--" stops that
// scan, so every argument reaches RunE untouched.
const argTerminator = "--"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the launcher command. It owns no flags: help, version
// and everything else belong to connect_and_price.py.
func newRootCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "connect-and-price [args...]",
		Short: "Run connect_and_price.py with the bundled virtual environment",
		Long: TitleStyle.Render("connect-and-price") + SubtitleStyle.Render(" - venv launcher for connect_and_price.py") + `

Runs venv/bin/python3 connect_and_price.py from the launcher's own directory,
forwarding every argument unchanged. The exit code is the script's exit code.

` + SubtitleStyle.Render("Settings:") + `
  launcher.cue next to the launcher, or QETE_LAUNCHER_* environment variables
  (e.g. QETE_LAUNCHER_UI_DRY_RUN=1 to print the plan without running it).`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == argTerminator {
				args = args[1:]
			}
			code := app.Run(cmd.Context(), args)
			if code.IsSuccess() {
				return nil
			}
			return &ExitError{Code: code}
		},
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the launcher with the process arguments and exits with the
// interpreter's exit code. This is called by main.main().
func Execute() {
	code := Run(context.Background(), os.Args[1:], Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	os.Exit(int(code))
}

// Run launches the interpreter for the process's own executable with args
// forwarded unchanged and returns the exit code the launcher should exit with.
func Run(ctx context.Context, args []string, streams Streams) types.ExitCode {
	app := NewApp(Dependencies{Streams: streams})
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(append([]string{argTerminator}, args...))
	rootCmd.SetIn(app.streams.In)
	rootCmd.SetOut(app.streams.Out)
	rootCmd.SetErr(app.streams.Err)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
		fang.WithErrorHandler(handleError),
	)
	return exitCodeFor(err)
}

// handleError prints errors that did not come from the launcher itself.
// ExitError is silent: the launcher already reported it, or the exit code
// belongs to the interpreter.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}
