// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package runtime

import "os"

// Process.Signal only supports os.Kill on this platform.
var forwardedSignals []os.Signal
