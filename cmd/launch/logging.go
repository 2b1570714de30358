// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/log"
)

const logPrefix = "launch"

// newLogger returns the launcher's diagnostic logger. It writes to w (stderr)
// so stdout stays reserved for the interpreter.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: logPrefix,
		Level:  level,
	})
}
