package render

import (
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/ccl/internal/reify"
	"github.com/cwbudde/ccl/internal/types"
)

// JSON serializes sol (built incrementally via sjson, one Set per variable
// and instance, the way the teacher's fmt command builds its output
// buffer line by line) and pretty-prints it with tidwall/pretty.
func JSON(sol *reify.Model) (string, error) {
	doc := "{}"
	var err error

	doc, err = sjson.Set(doc, "variables", map[string]any{})
	if err != nil {
		return "", err
	}
	for name, v := range sol.Variables {
		doc, err = sjson.Set(doc, "variables."+name, valueJSON(v))
		if err != nil {
			return "", err
		}
	}

	doc, err = sjson.Set(doc, "functions", map[string]any{})
	if err != nil {
		return "", err
	}
	for name, rows := range sol.Functions {
		doc, err = sjson.Set(doc, "functions."+name, rowsJSON(rows))
		if err != nil {
			return "", err
		}
	}

	doc, err = sjson.Set(doc, "instances", []any{})
	if err != nil {
		return "", err
	}
	for _, report := range sol.Instances {
		attrs := map[string]any{}
		for name, v := range report.Attributes {
			attrs[name] = valueJSON(v)
		}
		methods := map[string]any{}
		for name, rows := range report.Methods {
			methods[name] = rowsJSON(rows)
		}
		doc, err = sjson.Set(doc, "instances.-1", map[string]any{
			"name":    report.Name,
			"attrs":   attrs,
			"methods": methods,
		})
		if err != nil {
			return "", err
		}
	}

	return string(pretty.Pretty([]byte(doc))), nil
}

// YAML marshals the same structure JSON does, grounded on the teacher's
// use of a structured codec for diagnostic dumps.
func YAML(sol *reify.Model) (string, error) {
	doc := map[string]any{
		"variables": map[string]any{},
		"functions": map[string]any{},
		"instances": []any{},
	}
	variables := map[string]any{}
	for name, v := range sol.Variables {
		variables[name] = valueJSON(v)
	}
	doc["variables"] = variables

	functions := map[string]any{}
	for name, rows := range sol.Functions {
		functions[name] = rowsJSON(rows)
	}
	doc["functions"] = functions

	var instances []any
	for _, report := range sol.Instances {
		attrs := map[string]any{}
		for name, v := range report.Attributes {
			attrs[name] = valueJSON(v)
		}
		methods := map[string]any{}
		for name, rows := range report.Methods {
			methods[name] = rowsJSON(rows)
		}
		instances = append(instances, map[string]any{
			"name":    report.Name,
			"attrs":   attrs,
			"methods": methods,
		})
	}
	doc["instances"] = instances

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Query extracts one path out of a reified solution's JSON form —
// additive CLI sugar (SPEC_FULL.md §5), e.g. "instances.0.attrs.age".
func Query(sol *reify.Model, path string) (string, error) {
	doc, err := JSON(sol)
	if err != nil {
		return "", err
	}
	result := gjson.Get(doc, path)
	return result.String(), nil
}

func valueJSON(v reify.Value) any {
	switch v.Kind {
	case types.Bool:
		return v.Bool
	case types.Real:
		return map[string]any{"numer": v.Numer, "denom": v.Denom}
	case types.Structure, types.Class:
		return v.Instance
	default:
		return v.Int
	}
}

func rowsJSON(rows []reify.Row) any {
	out := make([]any, len(rows))
	for i, row := range rows {
		args := make([]any, len(row.Args))
		for j, a := range row.Args {
			args[j] = valueJSON(a)
		}
		out[i] = map[string]any{"args": args, "result": valueJSON(row.Result)}
	}
	return out
}
