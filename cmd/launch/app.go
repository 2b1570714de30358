// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kalshi-qete/launcher/internal/config"
	"github.com/kalshi-qete/launcher/internal/issue"
	"github.com/kalshi-qete/launcher/internal/layout"
	"github.com/kalshi-qete/launcher/internal/runtime"
	"github.com/kalshi-qete/launcher/pkg/types"
)

type (
	// Streams are the standard streams the interpreter inherits.
	Streams struct {
		In  io.Reader
		Out io.Writer
		Err io.Writer
	}

	// App wires the launcher's collaborators. It is the composition root for
	// the command: the cobra handler only forwards its arguments to Run.
	App struct {
		config        config.Provider
		executableDir func() (string, error)
		environ       func() []string
		newRuntime    func(runtime.RuntimeType) (runtime.Runtime, error)
		streams       Streams
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// ExecutableDir locates the launcher directory (layout.ExecutableDir).
		ExecutableDir func() (string, error)
		// Environ is the environment the interpreter inherits (os.Environ).
		Environ func() []string
		// NewRuntime selects the start mode implementation (runtime.New).
		NewRuntime func(runtime.RuntimeType) (runtime.Runtime, error)
		Streams    Streams
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		config:        deps.Config,
		executableDir: deps.ExecutableDir,
		environ:       deps.Environ,
		newRuntime:    deps.NewRuntime,
		streams:       deps.Streams,
	}
	if app.config == nil {
		app.config = config.NewProvider()
	}
	if app.executableDir == nil {
		app.executableDir = layout.ExecutableDir
	}
	if app.environ == nil {
		app.environ = os.Environ
	}
	if app.newRuntime == nil {
		app.newRuntime = runtime.New
	}
	if app.streams.In == nil {
		app.streams.In = os.Stdin
	}
	if app.streams.Out == nil {
		app.streams.Out = os.Stdout
	}
	if app.streams.Err == nil {
		app.streams.Err = os.Stderr
	}
	return app
}

// Run resolves the layout, checks the interpreter and starts it. Errors
// originating in the launcher are printed to the error stream and yield
// ExitFailure (or 126/127 for start failures); otherwise the interpreter's
// exit code is returned.
func (a *App) Run(ctx context.Context, args []string) types.ExitCode {
	dir, err := a.executableDir()
	if err != nil {
		a.printError(issue.WrapWithOperation(err, "resolve the launcher directory"), false)
		return types.ExitFailure
	}

	environ := a.environ()
	cfg, cfgPath, err := a.config.Load(ctx, config.LoadOptions{
		ScriptDir:      dir,
		ConfigFilePath: lookupEnv(environ, config.ConfigPathEnv),
		Environ:        environ,
	})
	if err != nil {
		a.printError(err, false)
		return types.ExitFailure
	}

	verbose := cfg.UI.Verbose
	logger := newLogger(a.streams.Err, verbose)
	logger.Debug("starting", "version", getVersionString(), "dir", dir, "config", cfgPath)

	l, err := layout.Resolve(dir, cfg.LayoutOptions())
	if err != nil {
		a.printError(issue.WrapWithOperation(err, "resolve the interpreter layout"), verbose)
		return types.ExitFailure
	}

	if err := l.CheckInterpreter(); err != nil {
		a.printError(missingInterpreterError(l, err), verbose)
		return types.ExitFailure
	}

	extraEnv := make(map[string]string)
	if err := runtime.LoadEnvFiles(extraEnv, cfg.Exec.EnvFiles, dir); err != nil {
		a.printError(issue.NewErrorContext().
			WithOperation("load env files").
			WithSuggestion("Check exec.env_files in "+config.ConfigFileName+"."+config.ConfigFileExt).
			WithSuggestion("Suffix a path with '?' to make the file optional").
			WithGuide(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError(), verbose)
		return types.ExitFailure
	}

	mode := runtime.RuntimeType(cfg.Exec.Mode.String())
	logger.Debug("resolved",
		"interpreter", l.Interpreter,
		"target", l.Target,
		"mode", mode,
		"argc", len(args),
		"env_files", len(cfg.Exec.EnvFiles),
	)

	if cfg.UI.DryRun {
		plan := dryRunPlan{Layout: l, Mode: mode, Args: args, ConfigPath: cfgPath, ExtraEnv: extraEnv}
		if err := renderDryRun(a.streams.Out, plan); err != nil {
			a.printError(err, verbose)
			return types.ExitFailure
		}
		return types.ExitSuccess
	}

	rt, err := a.newRuntime(mode)
	if err != nil {
		a.printError(err, verbose)
		return types.ExitFailure
	}

	execCtx := runtime.NewExecutionContext(ctx, l, args)
	execCtx.Stdin = a.streams.In
	execCtx.Stdout = a.streams.Out
	execCtx.Stderr = a.streams.Err
	execCtx.Environ = environ
	execCtx.ExtraEnv = extraEnv

	result := rt.Execute(execCtx)
	if result.Error != nil {
		a.printError(launchFailedError(l, result), verbose)
		return result.ExitCode
	}

	if result.Success() {
		logger.Debug("interpreter finished")
	} else {
		logger.Debug("interpreter exited", "code", result.ExitCode)
	}
	return result.ExitCode
}

// printError writes err to the error stream. Verbose mode adds the error
// chain and, when one is attached, the remediation guide.
func (a *App) printError(err error, verbose bool) {
	fmt.Fprintln(a.streams.Err, ErrorStyle.Render("✗ Error:")+" "+formatErrorForDisplay(err, verbose))

	var ae *issue.ActionableError
	if !verbose || !errors.As(err, &ae) || !ae.HasGuide() {
		return
	}
	rendered, renderErr := issue.Get(ae.Guide).Render("dark")
	if renderErr != nil {
		newLogger(a.streams.Err, verbose).Warn("failed to render guide", "guide", ae.Guide, "error", renderErr)
		return
	}
	fmt.Fprint(a.streams.Err, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

func missingInterpreterError(l *layout.Layout, err error) error {
	return issue.NewErrorContext().
		WithOperation("start " + filepath.Base(l.Target)).
		WithSuggestion("Create the virtual environment: python3 -m venv " + l.VenvDir).
		WithSuggestion("Install the dependencies: " + filepath.Join(filepath.Dir(l.Interpreter), "pip") + " install -r requirements.txt").
		WithGuide(issue.MissingInterpreterId).
		Wrap(err).
		BuildError()
}

func launchFailedError(l *layout.Layout, result *runtime.Result) error {
	ec := issue.NewErrorContext().
		WithOperation("start " + filepath.Base(l.Target)).
		WithGuide(issue.LaunchFailedId).
		Wrap(result.Error)
	switch result.ExitCode {
	case types.ExitCannotExecute:
		ec.WithSuggestion("Make the interpreter executable: chmod +x " + l.Interpreter)
	case types.ExitNotFound:
		ec.WithSuggestion("Check that the interpreter symlink target exists: ls -l " + l.Interpreter)
	}
	return ec.
		WithSuggestion("Recreate the virtual environment: python3 -m venv --clear " + l.VenvDir).
		BuildError()
}

// lookupEnv returns the last value of key in environ.
func lookupEnv(environ []string, key string) string {
	value := ""
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			value = v
		}
	}
	return value
}
