// SPDX-License-Identifier: MPL-2.0

// Package runtime starts the virtual environment interpreter.
//
// Two runtimes are provided: SpawnRuntime runs the interpreter as a child
// process with inherited standard streams and reports its exit status, and
// ReplaceRuntime replaces the launcher process image with the interpreter
// (unix only; elsewhere it behaves like SpawnRuntime).
package runtime
