// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the launcher tests: working
// directory management (MustChdir) and a fake virtual environment whose
// "python3" is a POSIX shell script that reports the arguments it received
// (WriteFakeVenv).
package testutil
