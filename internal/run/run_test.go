package run

import "testing"

func TestSourceSolvesSimpleIntervalProblem(t *testing.T) {
	src := `
let x : 0..10
let y : 0..10
constraint sum10 = x + y = 10
constraint ordered = x < y
solve
`
	res, err := Source(src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, want Found", res.Outcome)
	}
	x, ok := res.Model.Variables["x"]
	if !ok {
		t.Fatal("expected a reified value for x")
	}
	y, ok := res.Model.Variables["y"]
	if !ok {
		t.Fatal("expected a reified value for y")
	}
	if x.Int+y.Int != 10 {
		t.Errorf("x+y = %d, want 10 (x=%d, y=%d)", x.Int+y.Int, x.Int, y.Int)
	}
	if !(x.Int < y.Int) {
		t.Errorf("expected x < y, got x=%d y=%d", x.Int, y.Int)
	}
}

func TestSourceReportsUnsatisfiable(t *testing.T) {
	src := `
let x : 0..3 = 0
constraint impossible = x > 5
solve
`
	res, err := Source(src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if res.Outcome != NoSolution {
		t.Fatalf("Outcome = %v, want NoSolution", res.Outcome)
	}
}

func TestSourceOptimizeMinimizesObjective(t *testing.T) {
	src := `
let x : 0..10
constraint lowerBound = x >= 4
minimize x until 0
`
	res, err := Source(src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, want Found", res.Outcome)
	}
	if got := res.Model.Variables["x"].Int; got != 4 {
		t.Errorf("minimized x = %d, want 4", got)
	}
}

func TestSourceWithStructInstanceAndMethod(t *testing.T) {
	src := `
struct Point
  x : 0..10
  fun doubled() : Int = self.x + self.x
end

inst p1 : Point
constraint fixed = p1.x = 3
solve
`
	res, err := Source(src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, want Found", res.Outcome)
	}
	if len(res.Model.Instances) != 1 {
		t.Fatalf("expected 1 reified instance, got %d", len(res.Model.Instances))
	}
	report := res.Model.Instances[0]
	if report.Name != "p1" {
		t.Fatalf("instance name = %q, want p1", report.Name)
	}
	if report.Attributes["x"].Int != 3 {
		t.Errorf("p1.x = %d, want 3", report.Attributes["x"].Int)
	}
	rows := report.Methods["doubled"]
	if len(rows) != 1 || rows[0].Result.Int != 6 {
		t.Errorf("doubled() rows = %+v, want a single row with result 6", rows)
	}
}

func TestSourceRejectsDuplicateNames(t *testing.T) {
	_, err := Source("let x : Int = 1\nlet x : Int = 2\nsolve")
	if err == nil {
		t.Fatal("expected a duplicate-name error")
	}
}

func TestSourceRejectsUnresolvedName(t *testing.T) {
	_, err := Source("constraint c = undefinedName = 1\nsolve")
	if err == nil {
		t.Fatal("expected a resolve error for an unknown identifier")
	}
}

func TestSourceRejectsParseError(t *testing.T) {
	_, err := Source("let x : Int =")
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
