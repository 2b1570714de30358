// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kalshi-qete/launcher/internal/layout"
	"github.com/kalshi-qete/launcher/pkg/types"
)

// Runtime type constants for the supported start modes.
const (
	RuntimeTypeSpawn   RuntimeType = "spawn"
	RuntimeTypeReplace RuntimeType = "replace"
)

// ErrUnknownRuntime is returned by New for an unrecognized RuntimeType.
var ErrUnknownRuntime = errors.New("unknown runtime")

type (
	// RuntimeType identifies a start mode. Defined here rather than imported
	// from config; the command layer converts at the boundary.
	//
	//nolint:revive // RuntimeType is more descriptive than Type for external callers
	RuntimeType string

	// ExecutionContext contains everything needed to start the interpreter.
	ExecutionContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Layout holds the resolved interpreter and target script paths.
		Layout *layout.Layout
		// Args are forwarded verbatim after the target script.
		Args []string
		// Stdin, Stdout and Stderr are inherited by a spawned child.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Environ is the base environment (os.Environ() by default).
		Environ []string
		// ExtraEnv is layered over Environ (dotenv values).
		ExtraEnv map[string]string
	}

	// Result contains the outcome of starting the interpreter.
	Result struct {
		// ExitCode is the child's exit status, or the launcher's own code when
		// the child could not be started.
		ExitCode types.ExitCode
		// Error is set only when the interpreter could not be started.
		Error error
	}

	// Runtime starts the interpreter.
	Runtime interface {
		// Name returns the runtime name.
		Name() string
		// Execute starts the interpreter and reports its exit status.
		Execute(ctx *ExecutionContext) *Result
	}

	// LaunchError reports that the operating system refused to start the interpreter.
	LaunchError struct {
		Path string
		Err  error
	}
)

// New returns the runtime for typ.
func New(typ RuntimeType) (Runtime, error) {
	switch typ {
	case RuntimeTypeSpawn, "":
		return NewSpawnRuntime(), nil
	case RuntimeTypeReplace:
		return NewReplaceRuntime(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuntime, typ)
	}
}

// NewExecutionContext creates an execution context wired to the process's
// standard streams and environment.
func NewExecutionContext(ctx context.Context, l *layout.Layout, args []string) *ExecutionContext {
	return &ExecutionContext{
		Context:  ctx,
		Layout:   l,
		Args:     args,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Environ:  os.Environ(),
		ExtraEnv: make(map[string]string),
	}
}

// Success returns true if the interpreter ran and exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *LaunchError) Unwrap() error { return e.Err }

// launchFailure maps a start error to a result the way a POSIX shell does:
// 126 when the file cannot be executed, 127 when it cannot be found.
func launchFailure(path string, err error) *Result {
	code := types.ExitFailure
	switch {
	case errors.Is(err, fs.ErrPermission), isExecFormatError(err):
		code = types.ExitCannotExecute
	case errors.Is(err, fs.ErrNotExist):
		code = types.ExitNotFound
	}
	return &Result{ExitCode: code, Error: &LaunchError{Path: path, Err: err}}
}
