// Package render turns a resolved Problem and (when one was found) its
// reified solution back into text, grounded on spec.md §6's to_lang
// sketch: source-form declarations followed by solved values appended as
// `name = value` lines, function/method bodies as argument tables, and
// structure/class instances printing their attributes and method tables.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/reify"
	"github.com/cwbudde/ccl/internal/types"
)

// ToLang renders p's declarations, and — when sol is non-nil — their
// solved values, in the teacher's declaration-per-line text style.
func ToLang(p *problem.Problem, sol *reify.Model) string {
	var sb strings.Builder

	for _, v := range p.Variables {
		fmt.Fprintf(&sb, "let %s : %s", v.Name, v.Typ.String())
		if sol != nil {
			fmt.Fprintf(&sb, " = %s", valueString(sol.Variables[v.Name]))
		}
		sb.WriteString("\n")
	}

	for _, f := range p.Functions {
		fmt.Fprintf(&sb, "fun %s : %s", f.Name, f.ReturnType.String())
		if sol != nil {
			sb.WriteString(" " + tableString(paramNames(f.Params), sol.Functions[f.Name]))
		}
		sb.WriteString("\n")
	}

	if sol != nil {
		for _, report := range sol.Instances {
			fmt.Fprintf(&sb, "inst %s\n", report.Name)
			names := make([]string, 0, len(report.Attributes))
			for name := range report.Attributes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(&sb, "  %s = %s\n", name, valueString(report.Attributes[name]))
			}
			methodNames := make([]string, 0, len(report.Methods))
			for name := range report.Methods {
				methodNames = append(methodNames, name)
			}
			sort.Strings(methodNames)
			for _, name := range methodNames {
				fmt.Fprintf(&sb, "  %s %s\n", name, tableString(nil, report.Methods[name]))
			}
		}
	}

	return sb.String()
}

func paramNames(params []problem.FunctionParam) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

// tableString renders a reified Row list as `{ (a, b) => v; (c, d) => w }` for
// a multi-parameter function/method, or `= v` for a zero-parameter one.
func tableString(_ []string, rows []reify.Row) string {
	if len(rows) == 1 && len(rows[0].Args) == 0 {
		return "= " + valueString(rows[0].Result)
	}
	parts := make([]string, len(rows))
	for i, row := range rows {
		args := make([]string, len(row.Args))
		for j, a := range row.Args {
			args[j] = valueString(a)
		}
		parts[i] = fmt.Sprintf("(%s) => %s", strings.Join(args, ", "), valueString(row.Result))
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func valueString(v reify.Value) string {
	switch v.Kind {
	case types.Bool:
		return fmt.Sprintf("%t", v.Bool)
	case types.Real:
		if v.Denom == 1 {
			return fmt.Sprintf("%d.0", v.Numer)
		}
		return fmt.Sprintf("%d/%d", v.Numer, v.Denom)
	case types.Structure, types.Class:
		return v.Instance
	default:
		return fmt.Sprintf("%d", v.Int)
	}
}
