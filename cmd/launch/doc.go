// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the connect-and-price launcher command.
//
// The launcher has no flags or subcommands of its own. It resolves the
// virtual environment next to its executable, checks the interpreter and runs
// connect_and_price.py with every argument forwarded unchanged. Its exit code
// is the interpreter's exit code.
package cmd
