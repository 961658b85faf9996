package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/cwbudde/ccl/cmd/ccl/cmd"
)

// TestMain lets testscript re-exec this test binary as the `ccl` command
// inside each script, the standard rogpeppe/go-internal/testscript harness
// pattern — the same mechanism cobra-based CLIs in the wider ecosystem use
// to golden-test a command tree without a real `go build` + exec round trip.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"ccl": runCcl,
	}))
}

func runCcl() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
