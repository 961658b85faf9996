package render_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/ccl/internal/render"
	"github.com/cwbudde/ccl/internal/run"
)

const smallProgram = `
let x : 0..10
constraint fixed = x = 4
solve
`

func solveSmallProgram(t *testing.T) (*run.Result, func()) {
	t.Helper()
	res, err := run.Source(smallProgram)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if res.Outcome != run.Found {
		t.Fatalf("Outcome = %v, want Found", res.Outcome)
	}
	return &res, func() {}
}

func TestToLangRendersSolvedVariable(t *testing.T) {
	res, _ := solveSmallProgram(t)
	out := render.ToLang(res.Problem, &res.Model)
	if !strings.Contains(out, "let x : 0..10 = 4") {
		t.Errorf("ToLang output missing solved x: %q", out)
	}
}

func TestToLangWithoutSolutionOmitsValues(t *testing.T) {
	p, err := run.Source("let x : 0..10 = 0\nsolve")
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	out := render.ToLang(p.Problem, nil)
	if strings.Contains(out, "=") {
		t.Errorf("expected no solved values without a model, got %q", out)
	}
	if !strings.Contains(out, "let x : 0..10") {
		t.Errorf("expected declaration line, got %q", out)
	}
}

func TestJSONContainsReifiedVariable(t *testing.T) {
	res, _ := solveSmallProgram(t)
	out, err := render.JSON(&res.Model)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(out, `"x"`) || !strings.Contains(out, "4") {
		t.Errorf("JSON output missing x=4: %s", out)
	}
}

func TestYAMLContainsReifiedVariable(t *testing.T) {
	res, _ := solveSmallProgram(t)
	out, err := render.YAML(&res.Model)
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	if !strings.Contains(out, "x:") {
		t.Errorf("YAML output missing x key: %s", out)
	}
}

func TestQueryExtractsSinglePath(t *testing.T) {
	res, _ := solveSmallProgram(t)
	out, err := render.Query(&res.Model, "variables.x")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if strings.TrimSpace(out) != "4" {
		t.Errorf("Query(variables.x) = %q, want 4", out)
	}
}
