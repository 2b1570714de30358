// SPDX-License-Identifier: MPL-2.0

// Command connect-and-price runs connect_and_price.py with the virtual
// environment that sits next to the executable.
package main

import cmd "github.com/kalshi-qete/launcher/cmd/launch"

func main() {
	cmd.Execute()
}
