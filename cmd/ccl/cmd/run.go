package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/render"
	"github.com/cwbudde/ccl/internal/run"
)

var (
	filePath string
	format   string
	query    string
)

func init() {
	rootCmd.RunE = runFile
	rootCmd.Args = cobra.NoArgs

	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "source file to parse and solve (required)")
	rootCmd.Flags().StringVar(&format, "format", "text", "output format: text|json|yaml")
	rootCmd.Flags().StringVar(&query, "query", "", "extract one path from the reified solution (e.g. instances.0.attrs.age), implies --format json")
	rootCmd.MarkFlagRequired("file")
}

func runFile(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return &clerr.FileError{Path: filePath, Cause: err}
	}
	source := string(content)

	if verbosity >= 2 {
		fmt.Fprintf(os.Stderr, "reading %s (%d bytes)\n", filePath, len(source))
	}

	res, rerr := run.Source(source)
	if rerr != nil {
		color := os.Getenv("NO_COLOR") == ""
		fmt.Fprintln(os.Stderr, clerr.Render(rerr, source, filePath, color))
		return rerr
	}

	if verbosity >= 2 {
		fmt.Fprintf(os.Stderr, "%d variable(s), %d function(s), %d structure(s), %d class(es), %d instance(s), %d constraint(s)\n",
			len(res.Problem.Variables), len(res.Problem.Functions), len(res.Problem.Structures),
			len(res.Problem.Classes), len(res.Problem.Instances), len(res.Problem.Constraints))
	}
	if verbosity >= 3 {
		fmt.Fprintf(os.Stderr, "%# v\n", pretty.Formatter(res.Problem))
	}

	switch res.Outcome {
	case run.NoSolution:
		fmt.Fprintln(os.Stderr, "no solution")
		return fmt.Errorf("unsatisfiable")
	case run.Unknown:
		fmt.Fprintln(os.Stderr, "unknown (search budget exhausted)")
		return fmt.Errorf("unknown")
	}

	if query != "" {
		out, err := render.Query(&res.Model, query)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	switch format {
	case "json":
		out, err := render.JSON(&res.Model)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "yaml":
		out, err := render.YAML(&res.Model)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		fmt.Print(render.ToLang(res.Problem, &res.Model))
	}

	return nil
}
