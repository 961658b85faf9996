// Command ccl parses, checks and solves a constraint-modelling program.
package main

import (
	"os"

	"github.com/cwbudde/ccl/cmd/ccl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
