// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import (
	"os"

	"github.com/kalshi-qete/launcher/pkg/types"
)

func exitCodeFromState(state *os.ProcessState) types.ExitCode {
	return types.ExitCode(state.ExitCode())
}

func isExecFormatError(error) bool { return false }
