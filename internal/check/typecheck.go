package check

import (
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// TypeCheck runs spec.md §4.6's checking pass fail-fast, in declaration
// order, over every defining/constraint expression in p. It does not
// rewrite anything — Infer (infer.go) does that in a second pass.
func TypeCheck(p *problem.Problem) *clerr.TypeError {
	var err *clerr.TypeError
	forEachExpr(p, func(e problem.Expr) bool {
		if e2 := checkExpr(e, p); e2 != nil {
			err = e2
			return false
		}
		return true
	})
	return err
}

func checkExpr(e problem.Expr, p *problem.Problem) *clerr.TypeError {
	switch n := e.(type) {
	case *problem.Unary:
		if e2 := checkExpr(n.E, p); e2 != nil {
			return e2
		}
		t := problem.Typ(n.E, p)
		if n.Op == problem.OpNot {
			if !t.IsBool() {
				return typeErr("not", n.Pos, t, "Bool")
			}
			return nil
		}
		if !t.IsNumber() {
			return typeErr("-", n.Pos, t, "Int", "Real", "Interval")
		}
		return nil

	case *problem.Binary:
		if e2 := checkExpr(n.Left, p); e2 != nil {
			return e2
		}
		if e2 := checkExpr(n.Right, p); e2 != nil {
			return e2
		}
		lt, rt := problem.Typ(n.Left, p), problem.Typ(n.Right, p)
		switch n.Op {
		case problem.OpEq, problem.OpNe:
			if !types.IsCompatibleForEquality(lt, rt, p) {
				return typeErr(n.Op.String(), n.Pos, rt, lt.String())
			}
		case problem.OpLt, problem.OpLe, problem.OpGe, problem.OpGt:
			if !lt.IsNumber() || !rt.IsNumber() {
				return typeErr(n.Op.String(), n.Pos, rt, "Int", "Real", "Interval")
			}
		case problem.OpAnd, problem.OpOr, problem.OpImplies:
			if !lt.IsBool() || !rt.IsBool() {
				return typeErr(n.Op.String(), n.Pos, rt, "Bool")
			}
		case problem.OpAdd, problem.OpSub, problem.OpMul:
			if !lt.IsNumber() || !rt.IsNumber() {
				return typeErr(n.Op.String(), n.Pos, rt, "Int", "Real", "Interval")
			}
		case problem.OpDiv:
			if !lt.IsNumber() || !rt.IsNumber() {
				return typeErr("/", n.Pos, rt, "Int", "Real", "Interval")
			}
		}
		return nil

	case *problem.Nary:
		for _, el := range n.Elems {
			if e2 := checkExpr(el, p); e2 != nil {
				return e2
			}
			t := problem.Typ(el, p)
			if (n.Op == problem.OpNaryAnd || n.Op == problem.OpNaryOr) && !t.IsBool() {
				return typeErr(n.Op.String(), el.Position(), t, "Bool")
			}
			if (n.Op == problem.OpNaryAdd || n.Op == problem.OpNaryMul) && !t.IsNumber() {
				return typeErr(n.Op.String(), el.Position(), t, "Int", "Real", "Interval")
			}
		}
		return nil

	case *problem.FunctionCall:
		f := p.GetFunction(n.ID)
		for i, arg := range n.Args {
			if e2 := checkExpr(arg, p); e2 != nil {
				return e2
			}
			at := problem.Typ(arg, p)
			if !types.IsSubtypeOf(at, f.Params[i].Typ, p) {
				return typeErr(f.Name, arg.Position(), at, f.Params[i].Typ.String())
			}
		}
		return nil

	case *problem.StrucMetCall:
		if e2 := checkExpr(n.Receiver, p); e2 != nil {
			return e2
		}
		return checkMethCall(n.Receiver, n.Method, n.Args, p)

	case *problem.ClassMetCall:
		if e2 := checkExpr(n.Receiver, p); e2 != nil {
			return e2
		}
		return checkMethCall(n.Receiver, n.Method, n.Args, p)

	case *problem.StrucAttribute:
		return checkExpr(n.Receiver, p)
	case *problem.ClassAttribute:
		return checkExpr(n.Receiver, p)

	case *problem.AsClass:
		if e2 := checkExpr(n.E, p); e2 != nil {
			return e2
		}
		t := problem.Typ(n.E, p)
		target := types.NewClass(n.Target)
		if !types.IsSubtypeOf(t, target, p) {
			return typeErr("as", n.Pos, t, target.String())
		}
		return nil

	case *problem.AsInterval:
		if e2 := checkExpr(n.E, p); e2 != nil {
			return e2
		}
		t := problem.Typ(n.E, p)
		if !t.IsInteger() {
			return typeErr("as", n.Pos, t, "Int", "Interval")
		}
		return nil

	case *problem.AsInt:
		if e2 := checkExpr(n.E, p); e2 != nil {
			return e2
		}
		t := problem.Typ(n.E, p)
		if !t.IsNumber() {
			return typeErr("as Int", n.Pos, t, "Int", "Real", "Interval")
		}
		return nil

	case *problem.AsReal:
		if e2 := checkExpr(n.E, p); e2 != nil {
			return e2
		}
		t := problem.Typ(n.E, p)
		if !t.IsNumber() {
			return typeErr("as Real", n.Pos, t, "Int", "Real", "Interval")
		}
		return nil

	case *problem.IfThenElse:
		for _, c := range n.Conds {
			if e2 := checkExpr(c, p); e2 != nil {
				return e2
			}
			if t := problem.Typ(c, p); !t.IsBool() {
				return typeErr("if condition", c.Position(), t, "Bool")
			}
		}
		for _, th := range n.Thens {
			if e2 := checkExpr(th, p); e2 != nil {
				return e2
			}
		}
		if e2 := checkExpr(n.Else, p); e2 != nil {
			return e2
		}
		common := problem.Typ(n, p)
		allBranches := append(append([]problem.Expr{}, n.Thens...), n.Else)
		for _, b := range allBranches {
			if bt := problem.Typ(b, p); !types.IsSubtypeOf(bt, common, p) {
				return typeErr("if branch", b.Position(), bt, common.String())
			}
		}
		return nil

	case *problem.Quantifier:
		return checkExpr(n.Body, p)

	default:
		return nil
	}
}

func checkMethCall(receiver problem.Expr, id problem.MethodID, args []problem.Expr, p *problem.Problem) *clerr.TypeError {
	m := p.GetMethod(id)
	for i, arg := range args {
		if e2 := checkExpr(arg, p); e2 != nil {
			return e2
		}
		at := problem.Typ(arg, p)
		if !types.IsSubtypeOf(at, m.Params[i].Typ, p) {
			return typeErr(m.Name, arg.Position(), at, m.Params[i].Typ.String())
		}
	}
	return nil
}

func typeErr(exprDesc string, pos clerr.Position, actual types.Type, expected ...string) *clerr.TypeError {
	return &clerr.TypeError{Expr: exprDesc, Pos: pos, Actual: actual.String(), Expected: expected}
}
