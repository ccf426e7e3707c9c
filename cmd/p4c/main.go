// Command p4c is the front end's CLI driver (spec §6): it reads a single
// P4-16 source file, runs it through internal/compile, and reports the
// first diagnostic any stage raises.
package main

import "os"

func main() {
	os.Exit(Main())
}
