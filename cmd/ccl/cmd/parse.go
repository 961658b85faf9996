package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and dump the resulting Problem",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	source := string(content)

	p, perr := parser.Parse(source)
	if perr != nil {
		color := os.Getenv("NO_COLOR") == ""
		fmt.Fprintln(os.Stderr, clerr.Render(perr, source, args[0], color))
		return perr
	}

	fmt.Printf("%# v\n", pretty.Formatter(p))
	return nil
}
