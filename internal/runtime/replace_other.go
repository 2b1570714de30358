// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

// ReplaceRuntime falls back to spawning on platforms without execve.
type ReplaceRuntime struct {
	spawn SpawnRuntime
}

// NewReplaceRuntime creates a new replace runtime.
func NewReplaceRuntime() *ReplaceRuntime {
	return &ReplaceRuntime{}
}

// Name returns the runtime name.
func (r *ReplaceRuntime) Name() string {
	return string(RuntimeTypeReplace)
}

// Execute spawns the interpreter and waits for it.
func (r *ReplaceRuntime) Execute(ctx *ExecutionContext) *Result {
	return r.spawn.Execute(ctx)
}
