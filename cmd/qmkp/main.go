// SPDX-License-Identifier: MIT

// Command qmkp assigns frequency channels to radio users with the QMKP-HP
// greedy engine and compares it against random and round-robin baselines.
package main

import "github.com/katalvlaran/qmkp/cmd/qmkp/commands"

func main() {
	commands.Execute()
}
