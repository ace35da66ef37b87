// Command flashsim replays flash access traces through the flash block cache
// and reports its statistics.
package main

import "github.com/sarchlab/flashsim/cmd/flashsim/cmd"

func main() {
	cmd.Execute()
}
