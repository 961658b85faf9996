// Package check implements the well-formedness checker and the bidirectional
// type checker/inferer (spec.md §4.5/§4.6, component F/G).
package check

import (
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// WellFormed runs the three orthogonal checks of spec.md §4.5 over the
// resolved Problem: interval endpoints, call arity, and bounded domains.
func WellFormed(p *problem.Problem) error {
	if err := checkIntervals(p); err != nil {
		return err
	}
	if err := checkArities(p); err != nil {
		return err
	}
	if err := checkBounded(p); err != nil {
		return err
	}
	return nil
}

// ---------- 1. interval endpoints ----------

func checkIntervals(p *problem.Problem) *clerr.IntervalError {
	check := func(t types.Type, pos clerr.Position) *clerr.IntervalError {
		if t.Kind() != types.Interval {
			return nil
		}
		lo, hi := t.Bounds()
		if lo > hi {
			return &clerr.IntervalError{Pos: pos, Lo: lo, Hi: hi}
		}
		return nil
	}

	for _, v := range p.Variables {
		if err := check(v.Typ, v.Pos); err != nil {
			return err
		}
	}
	for _, f := range p.Functions {
		for _, param := range f.Params {
			if err := check(param.Typ, param.Pos); err != nil {
				return err
			}
		}
		if err := check(f.ReturnType, f.Pos); err != nil {
			return err
		}
	}
	var structErr *clerr.IntervalError
	forEachMember(p, func(attrs []problem.Attribute, meths []problem.Method) bool {
		for _, a := range attrs {
			if err := check(a.Typ, a.Pos); err != nil {
				structErr = err
				return false
			}
		}
		for _, m := range meths {
			for _, param := range m.Params {
				if err := check(param.Typ, param.Pos); err != nil {
					structErr = err
					return false
				}
			}
			if err := check(m.ReturnType, m.Pos); err != nil {
				structErr = err
				return false
			}
		}
		return true
	})
	if structErr != nil {
		return structErr
	}

	var exprErr *clerr.IntervalError
	forEachExpr(p, func(e problem.Expr) bool {
		problem.Walk(e, func(n problem.Expr) bool {
			if exprErr != nil {
				return false
			}
			switch x := n.(type) {
			case *problem.AsInterval:
				if x.Lo > x.Hi {
					exprErr = &clerr.IntervalError{Pos: x.Pos, Lo: x.Lo, Hi: x.Hi}
					return false
				}
			case *problem.Quantifier:
				for _, param := range x.Params {
					if err := check(param.Typ, param.Pos); err != nil {
						exprErr = err
						return false
					}
				}
			}
			return true
		})
		return exprErr == nil
	})
	return exprErr
}

// ---------- 2. call arity ----------

func checkArities(p *problem.Problem) *clerr.ParameterError {
	var err *clerr.ParameterError
	forEachExpr(p, func(e problem.Expr) bool {
		problem.Walk(e, func(n problem.Expr) bool {
			if err != nil {
				return false
			}
			switch x := n.(type) {
			case *problem.FunctionCall:
				want := len(p.GetFunction(x.ID).Params)
				if len(x.Args) != want {
					err = &clerr.ParameterError{Expr: "function call", Pos: x.Pos, Size: len(x.Args), Expected: want}
					return false
				}
			case *problem.StrucMetCall:
				want := len(p.GetMethod(x.Method).Params)
				if len(x.Args) != want {
					err = &clerr.ParameterError{Expr: "method call", Pos: x.Pos, Size: len(x.Args), Expected: want}
					return false
				}
			case *problem.ClassMetCall:
				want := len(p.GetMethod(x.Method).Params)
				if len(x.Args) != want {
					err = &clerr.ParameterError{Expr: "method call", Pos: x.Pos, Size: len(x.Args), Expected: want}
					return false
				}
			}
			return true
		})
		return err == nil
	})
	return err
}

// ---------- 3. bounded domains ----------

func checkBounded(p *problem.Problem) *clerr.BoundedError {
	for _, f := range p.Functions {
		for _, param := range f.Params {
			if err := requireBounded(param.Name, param.Typ, param.Pos, p); err != nil {
				return err
			}
		}
	}
	var memberErr *clerr.BoundedError
	forEachMember(p, func(_ []problem.Attribute, meths []problem.Method) bool {
		for _, m := range meths {
			for _, param := range m.Params {
				if err := requireBounded(param.Name, param.Typ, param.Pos, p); err != nil {
					memberErr = err
					return false
				}
			}
		}
		return true
	})
	if memberErr != nil {
		return memberErr
	}

	var quantErr *clerr.BoundedError
	forEachExpr(p, func(e problem.Expr) bool {
		problem.Walk(e, func(n problem.Expr) bool {
			if quantErr != nil {
				return false
			}
			if q, ok := n.(*problem.Quantifier); ok {
				for _, param := range q.Params {
					if err := requireBounded(param.Name, param.Typ, param.Pos, p); err != nil {
						quantErr = err
						return false
					}
				}
			}
			return true
		})
		return quantErr == nil
	})
	return quantErr
}

func requireBounded(name string, t types.Type, pos clerr.Position, p *problem.Problem) *clerr.BoundedError {
	if t.IsBounded(p) {
		return nil
	}
	return &clerr.BoundedError{Name: name, Pos: pos}
}

// ---------- shared traversal helpers ----------

// forEachMember visits every structure's and class's (attributes, methods)
// pair. The visit function returns false to stop iteration early.
func forEachMember(p *problem.Problem, visit func(attrs []problem.Attribute, meths []problem.Method) bool) {
	for i := range p.Structures {
		if !visit(p.Structures[i].Attributes, p.Structures[i].Methods) {
			return
		}
	}
	for i := range p.Classes {
		if !visit(p.Classes[i].Attributes, p.Classes[i].Methods) {
			return
		}
	}
}

// forEachExpr visits every top-level defining/constraint expression in the
// Problem: variable initializers, function/method/attribute bodies,
// constraints, and the search objective.
func forEachExpr(p *problem.Problem, visit func(problem.Expr) bool) {
	for i := range p.Variables {
		if p.Variables[i].Expr != nil && !visit(p.Variables[i].Expr) {
			return
		}
	}
	for i := range p.Functions {
		if p.Functions[i].Expr != nil && !visit(p.Functions[i].Expr) {
			return
		}
	}
	cont := true
	forEachMember(p, func(attrs []problem.Attribute, meths []problem.Method) bool {
		for _, a := range attrs {
			if a.Expr != nil && !visit(a.Expr) {
				cont = false
				return false
			}
		}
		for _, m := range meths {
			if m.Expr != nil && !visit(m.Expr) {
				cont = false
				return false
			}
		}
		return true
	})
	if !cont {
		return
	}
	for i := range p.Constraints {
		if !visit(p.Constraints[i].Expr) {
			return
		}
	}
	if p.Search.IsOptimize && p.Search.Expr != nil {
		visit(p.Search.Expr)
	}
}
