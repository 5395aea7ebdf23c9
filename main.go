// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/wappcheck/cmd/wappcheck"

func main() {
	cmd.Execute()
}
