package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by build flags — kept as the teacher's
// package-level Version/GitCommit/BuildDate trio (cmd/dwscript/cmd/root.go).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "ccl",
	Short: "Constraint-modelling language front end and SMT-backed solver",
	Long: `ccl parses a small declarative constraint-modelling language —
typed variables, pure functions, structures, single-inheritance classes,
named instances and constraints — resolves and type-checks it, encodes it
against an SMT-style backend, and renders the solved model (or reports
why none exists).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase diagnostic verbosity (repeatable, 0-3)")
}
