// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
)

// SpawnRuntime runs the interpreter as a child process and waits for it.
type SpawnRuntime struct {
	// Signals are relayed to the child while it runs. Nil means
	// forwardedSignals (SIGTERM and SIGHUP on unix).
	Signals []os.Signal
}

// NewSpawnRuntime creates a new spawn runtime.
func NewSpawnRuntime() *SpawnRuntime {
	return &SpawnRuntime{}
}

// Name returns the runtime name.
func (r *SpawnRuntime) Name() string {
	return string(RuntimeTypeSpawn)
}

// Execute runs the interpreter with the target script and forwarded args,
// inheriting the context's streams. The result carries the child's exit code.
func (r *SpawnRuntime) Execute(ctx *ExecutionContext) *Result {
	l := ctx.Layout
	goctx := ctx.Context
	if goctx == nil {
		goctx = context.Background()
	}

	cmd := exec.CommandContext(goctx, l.Interpreter, l.Argv(ctx.Args)...)
	cmd.Env = BuildEnv(ctx.Environ, ctx.ExtraEnv)
	cmd.Stdin = ctx.Stdin
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr

	// An interactive interrupt reaches the whole foreground process group, so
	// the child already has it. Cancellation never touches the child and the
	// launcher keeps waiting for the child's own status.
	cmd.Cancel = func() error { return nil }

	relay := r.signals()
	sigs := make(chan os.Signal, 1)
	if len(relay) > 0 {
		signal.Notify(sigs, relay...)
		defer signal.Stop(sigs)
	}

	if err := cmd.Start(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return launchFailure(l.Interpreter, execErr.Err)
		}
		return launchFailure(l.Interpreter, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	if cmd.ProcessState != nil {
		return &Result{ExitCode: exitCodeFromState(cmd.ProcessState)}
	}
	return launchFailure(l.Interpreter, err)
}

func (r *SpawnRuntime) signals() []os.Signal {
	if r.Signals != nil {
		return r.Signals
	}
	return forwardedSignals
}
