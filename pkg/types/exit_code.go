// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

// Exit codes produced by the launcher itself. Every other code comes from the
// invoked program and is passed through unchanged.
const (
	// ExitSuccess is returned for a successful dry run.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned when the interpreter is missing or configuration fails.
	ExitFailure ExitCode = 1
	// ExitCannotExecute mirrors the POSIX shell code for a command that exists
	// but cannot be executed (e.g. permission denied).
	ExitCannotExecute ExitCode = 126
	// ExitNotFound mirrors the POSIX shell code for a command that cannot be found.
	ExitNotFound ExitCode = 127

	signalExitBase ExitCode = 128
)

// ExitCode represents a process exit status code.
// Exit codes are in the range 0-255 on POSIX systems.
// The zero value (0) means success.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// SignalExitCode returns the shell-style exit code for a process terminated
// by the given signal number (128 + signal).
func SignalExitCode(signal int) ExitCode {
	return signalExitBase + ExitCode(signal)
}
