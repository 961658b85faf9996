package parser

import (
	"testing"

	"github.com/cwbudde/ccl/internal/problem"
)

func mustParse(t *testing.T, src string) *problem.Problem {
	t.Helper()
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %s", src, err.Error())
	}
	return p
}

func TestParseLetWithInterval(t *testing.T) {
	p := mustParse(t, "let x : 0..10 = 3")
	if len(p.Variables) != 1 {
		t.Fatalf("expected 1 variable, got %d", len(p.Variables))
	}
	v := p.Variables[0]
	if v.Name != "x" {
		t.Errorf("Name = %q, want x", v.Name)
	}
	if !v.Typ.IsInterval() {
		t.Fatalf("Typ = %v, want an interval", v.Typ)
	}
	lo, hi := v.Typ.Bounds()
	if lo != 0 || hi != 10 {
		t.Errorf("Bounds = (%d,%d), want (0,10)", lo, hi)
	}
	iv, ok := v.Expr.(*problem.IntValue)
	if !ok {
		t.Fatalf("Expr is %T, want *problem.IntValue", v.Expr)
	}
	if iv.Value != 3 {
		t.Errorf("Expr.Value = %d, want 3", iv.Value)
	}
}

func TestParseLetWithoutInitializer(t *testing.T) {
	p := mustParse(t, "let x : Int")
	if p.Variables[0].Expr != nil {
		t.Errorf("expected nil Expr for uninitialized variable, got %#v", p.Variables[0].Expr)
	}
}

func TestParseFunAndParamList(t *testing.T) {
	p := mustParse(t, "fun add(a : Int, b : Int) : Int = a + b")
	if len(p.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(p.Functions))
	}
	f := p.Functions[0]
	if f.Name != "add" || len(f.Params) != 2 {
		t.Fatalf("got %+v", f)
	}
	if !f.ReturnType.IsInteger() {
		t.Errorf("ReturnType = %v, want Int-like", f.ReturnType)
	}
	bin, ok := f.Expr.(*problem.Binary)
	if !ok || bin.Op != problem.OpAdd {
		t.Fatalf("body = %#v, want Binary(+)", f.Expr)
	}
}

func TestParseStructAndClassWithMembersAndMethods(t *testing.T) {
	p := mustParse(t, `
struct Point
  x : Int = 0
  y : Int = 0
  fun magnitude() : Int = x + y
end

class Shape extends Point
  label : Int = 1
end
`)
	if len(p.Structures) != 1 {
		t.Fatalf("expected 1 structure, got %d", len(p.Structures))
	}
	s := p.Structures[0]
	if s.Name != "Point" || len(s.Attributes) != 2 || len(s.Methods) != 1 {
		t.Fatalf("got %+v", s)
	}
	if len(p.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(p.Classes))
	}
	c := p.Classes[0]
	if c.Name != "Shape" || c.ExtendsName != "Point" {
		t.Fatalf("got %+v", c)
	}
}

func TestParseInstAndConstraint(t *testing.T) {
	p := mustParse(t, `
struct Point
  x : Int = 0
end

inst p1 : Point
constraint positive = p1.x >= 0
`)
	if len(p.Instances) != 1 || p.Instances[0].Name != "p1" {
		t.Fatalf("got %+v", p.Instances)
	}
	if len(p.Constraints) != 1 || p.Constraints[0].Name != "positive" {
		t.Fatalf("got %+v", p.Constraints)
	}
	if _, ok := p.Constraints[0].Expr.(*problem.Binary); !ok {
		t.Fatalf("expected a Binary constraint body, got %#v", p.Constraints[0].Expr)
	}
}

func TestParseSolveAndOptimize(t *testing.T) {
	p := mustParse(t, "let x : Int = 1\nsolve")
	if p.Search.IsOptimize {
		t.Errorf("plain solve should not be IsOptimize")
	}

	p2 := mustParse(t, "let x : Int = 1\nminimize x until 0")
	if !p2.Search.IsOptimize || !p2.Search.Minimize {
		t.Errorf("expected a minimizing Optimize search, got %+v", p2.Search)
	}

	p3 := mustParse(t, "let x : Int = 1\nmaximize x until 1.5")
	if !p3.Search.IsOptimize || p3.Search.Minimize {
		t.Errorf("expected a maximizing Optimize search, got %+v", p3.Search)
	}
	if !p3.Search.Bound.IsReal || p3.Search.Bound.Numer != 15 || p3.Search.Bound.Denom != 10 {
		t.Errorf("bound = %+v, want 1.5 as 15/10", p3.Search.Bound)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		// check is given the parsed constraint body's root expr
		check func(t *testing.T, e problem.Expr)
	}{
		{
			"implies is loosest and right-associative",
			"constraint c = true and false => false => true",
			func(t *testing.T, e problem.Expr) {
				top, ok := e.(*problem.Binary)
				if !ok || top.Op != problem.OpImplies {
					t.Fatalf("root = %#v, want top-level Implies", e)
				}
				// right side should itself be an implies
				if _, ok := top.Right.(*problem.Binary); !ok {
					t.Fatalf("right side = %#v, want nested Binary", top.Right)
				}
			},
		},
		{
			"and binds tighter than or",
			"constraint c = true or false and true",
			func(t *testing.T, e problem.Expr) {
				top, ok := e.(*problem.Binary)
				if !ok || top.Op != problem.OpOr {
					t.Fatalf("root = %#v, want top-level Or", e)
				}
				right, ok := top.Right.(*problem.Binary)
				if !ok || right.Op != problem.OpAnd {
					t.Fatalf("right = %#v, want nested And", top.Right)
				}
			},
		},
		{
			"additive binds tighter than relational",
			"constraint c = 1 + 2 = 3",
			func(t *testing.T, e problem.Expr) {
				top, ok := e.(*problem.Binary)
				if !ok || top.Op != problem.OpEq {
					t.Fatalf("root = %#v, want top-level Eq", e)
				}
				left, ok := top.Left.(*problem.Binary)
				if !ok || left.Op != problem.OpAdd {
					t.Fatalf("left = %#v, want nested Add", top.Left)
				}
			},
		},
		{
			"multiplicative binds tighter than additive",
			"constraint c = 1 + 2 * 3 = 7",
			func(t *testing.T, e problem.Expr) {
				top := e.(*problem.Binary)
				left := top.Left.(*problem.Binary)
				if left.Op != problem.OpAdd {
					t.Fatalf("left.Op = %v, want Add", left.Op)
				}
				right, ok := left.Right.(*problem.Binary)
				if !ok || right.Op != problem.OpMul {
					t.Fatalf("left.Right = %#v, want nested Mul", left.Right)
				}
			},
		},
		{
			"as binds tighter than relational but looser than additive",
			"constraint c = 1 + 2 as Real = 3",
			func(t *testing.T, e problem.Expr) {
				top := e.(*problem.Binary)
				if top.Op != problem.OpEq {
					t.Fatalf("top.Op = %v, want Eq", top.Op)
				}
				as, ok := top.Left.(*problem.UnresolvedAs)
				if !ok || !as.IsReal {
					t.Fatalf("top.Left = %#v, want UnresolvedAs{IsReal}", top.Left)
				}
				if _, ok := as.E.(*problem.Binary); !ok {
					t.Fatalf("as.E = %#v, want nested Add", as.E)
				}
			},
		},
		{
			"unary not binds tighter than and",
			"constraint c = not true and false",
			func(t *testing.T, e problem.Expr) {
				top := e.(*problem.Binary)
				if top.Op != problem.OpAnd {
					t.Fatalf("top.Op = %v, want And", top.Op)
				}
				if _, ok := top.Left.(*problem.Unary); !ok {
					t.Fatalf("top.Left = %#v, want Unary(not)", top.Left)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParse(t, tt.src)
			tt.check(t, p.Constraints[0].Expr)
		})
	}
}

func TestParsePostfixFieldAndMethodChain(t *testing.T) {
	p := mustParse(t, "constraint c = self.left.cost(1, 2) = 0")
	top := p.Constraints[0].Expr.(*problem.Binary)
	call, ok := top.Left.(*problem.UnresolvedMethCall)
	if !ok || call.Name != "cost" || len(call.Args) != 2 {
		t.Fatalf("top.Left = %#v, want UnresolvedMethCall(cost, 2 args)", top.Left)
	}
	attr, ok := call.Receiver.(*problem.UnresolvedAttribute)
	if !ok || attr.Name != "left" {
		t.Fatalf("receiver = %#v, want UnresolvedAttribute(left)", call.Receiver)
	}
	if _, ok := attr.Receiver.(*problem.Unresolved); !ok {
		t.Fatalf("attr.Receiver = %#v, want Unresolved(self)", attr.Receiver)
	}
}

func TestParseIfThenElif(t *testing.T) {
	p := mustParse(t, "constraint c = (if true then 1 elif false then 2 else 3 end) = 1")
	top := p.Constraints[0].Expr.(*problem.Binary)
	ite, ok := top.Left.(*problem.IfThenElse)
	if !ok {
		t.Fatalf("got %#v, want IfThenElse", top.Left)
	}
	if len(ite.Conds) != 2 || len(ite.Thens) != 2 {
		t.Fatalf("got %d conds/%d thens, want 2/2", len(ite.Conds), len(ite.Thens))
	}
}

func TestParseQuantifier(t *testing.T) {
	p := mustParse(t, "constraint c = forall i : 0..3 | i >= 0 end")
	q, ok := p.Constraints[0].Expr.(*problem.Quantifier)
	if !ok || q.Op != problem.QtForall {
		t.Fatalf("got %#v, want Quantifier(forall)", p.Constraints[0].Expr)
	}
	if len(q.Params) != 1 || q.Params[0].Name != "i" {
		t.Fatalf("params = %+v", q.Params)
	}
}

func TestParseRealLiteral(t *testing.T) {
	tests := []struct {
		lit         string
		numer, denom int
	}{
		{"1.5", 15, 10},
		{"0.25", 25, 100},
		{"3", 3, 1},
		{"10.0", 100, 10},
	}
	for _, tt := range tests {
		numer, denom, err := parseRealLiteral(tt.lit)
		if err != nil {
			t.Fatalf("parseRealLiteral(%q): %v", tt.lit, err)
		}
		if numer != tt.numer || denom != tt.denom {
			t.Errorf("parseRealLiteral(%q) = (%d,%d), want (%d,%d)", tt.lit, numer, denom, tt.numer, tt.denom)
		}
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := Parse("let x : Int =")
	if err == nil {
		t.Fatal("expected a parse error for a missing expression")
	}
	if err.Pos.Line != 1 {
		t.Errorf("error line = %d, want 1", err.Pos.Line)
	}
}
