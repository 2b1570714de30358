// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"errors"
	"os"
	"syscall"

	"github.com/kalshi-qete/launcher/pkg/types"
)

// exitCodeFromState returns the child's exit status, or 128+signal when the
// child was terminated by a signal.
func exitCodeFromState(state *os.ProcessState) types.ExitCode {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return types.SignalExitCode(int(ws.Signal()))
	}
	return types.ExitCode(state.ExitCode())
}

func isExecFormatError(err error) bool {
	return errors.Is(err, syscall.ENOEXEC)
}
