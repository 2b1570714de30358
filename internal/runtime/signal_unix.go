// SPDX-License-Identifier: MPL-2.0

//go:build unix

package runtime

import (
	"os"

	"golang.org/x/sys/unix"
)

// forwardedSignals reach the launcher's pid alone (kill, service managers,
// a closed terminal) rather than the process group, so the child would not
// otherwise see them.
var forwardedSignals = []os.Signal{unix.SIGTERM, unix.SIGHUP}
