// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"golang.org/x/sys/unix"
)

// execve replaces the current process image. Swapped in tests.
var execve = unix.Exec

// ReplaceRuntime replaces the launcher process with the interpreter. The
// interpreter inherits the launcher's pid and file descriptors 0-2; the
// context's writers and Context are not used.
type ReplaceRuntime struct{}

// NewReplaceRuntime creates a new replace runtime.
func NewReplaceRuntime() *ReplaceRuntime {
	return &ReplaceRuntime{}
}

// Name returns the runtime name.
func (r *ReplaceRuntime) Name() string {
	return string(RuntimeTypeReplace)
}

// Execute only returns when the process image could not be replaced.
func (r *ReplaceRuntime) Execute(ctx *ExecutionContext) *Result {
	l := ctx.Layout
	argv := append([]string{l.Interpreter}, l.Argv(ctx.Args)...)
	err := execve(l.Interpreter, argv, BuildEnv(ctx.Environ, ctx.ExtraEnv))
	return launchFailure(l.Interpreter, err)
}
