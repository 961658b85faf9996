package check

import (
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// Infer runs spec.md §4.6's inference pass: it rewrites every
// defining/constraint expression in p, wrapping any class-typed
// subexpression used where a different (but compatible) class type is
// expected in an explicit AsClass coercion. It is idempotent — running it
// again on its own output is a no-op (spec.md testable property 4), since a
// node already wrapped in AsClass(·, C) synthesises exactly C and coerceTo
// only wraps on a genuine mismatch.
func Infer(p *problem.Problem) {
	for i := range p.Variables {
		if p.Variables[i].Expr != nil {
			p.Variables[i].Expr = inferExpr(p.Variables[i].Expr, p)
		}
	}
	for i := range p.Functions {
		if p.Functions[i].Expr != nil {
			p.Functions[i].Expr = inferExpr(p.Functions[i].Expr, p)
		}
	}
	for i := range p.Structures {
		for j := range p.Structures[i].Attributes {
			if e := p.Structures[i].Attributes[j].Expr; e != nil {
				p.Structures[i].Attributes[j].Expr = inferExpr(e, p)
			}
		}
		for j := range p.Structures[i].Methods {
			if e := p.Structures[i].Methods[j].Expr; e != nil {
				p.Structures[i].Methods[j].Expr = inferExpr(e, p)
			}
		}
	}
	for i := range p.Classes {
		for j := range p.Classes[i].Attributes {
			if e := p.Classes[i].Attributes[j].Expr; e != nil {
				p.Classes[i].Attributes[j].Expr = inferExpr(e, p)
			}
		}
		for j := range p.Classes[i].Methods {
			if e := p.Classes[i].Methods[j].Expr; e != nil {
				p.Classes[i].Methods[j].Expr = inferExpr(e, p)
			}
		}
	}
	for i := range p.Constraints {
		p.Constraints[i].Expr = inferExpr(p.Constraints[i].Expr, p)
	}
	if p.Search.IsOptimize && p.Search.Expr != nil {
		p.Search.Expr = inferExpr(p.Search.Expr, p)
	}
}

// coerceTo wraps e in AsClass(e, target) iff both e's type and target are
// classes, e's type strictly differs from target, and e's type is a
// subtype of target — the only shape spec.md §4.6 allows an implicit
// coercion to bridge. Already being an AsClass to the same target is a
// no-op (idempotence).
func coerceTo(e problem.Expr, target types.Type, p *problem.Problem) problem.Expr {
	if target.Kind() != types.Class {
		return e
	}
	t := problem.Typ(e, p)
	if t.Kind() != types.Class || t.Equal(target) {
		return e
	}
	if !types.IsSubtypeOf(t, target, p) {
		return e
	}
	if ac, ok := e.(*problem.AsClass); ok && ac.Target == target.ClassID() {
		return e
	}
	return &problem.AsClass{E: e, Target: target.ClassID(), Pos: e.Position()}
}

func inferExpr(e problem.Expr, p *problem.Problem) problem.Expr {
	switch n := e.(type) {
	case *problem.Unary:
		return &problem.Unary{Op: n.Op, E: inferExpr(n.E, p), Pos: n.Pos}

	case *problem.Binary:
		l := inferExpr(n.Left, p)
		r := inferExpr(n.Right, p)
		if n.Op.IsArithmetic() || n.Op == problem.OpEq || n.Op == problem.OpNe || n.Op.IsRelational() {
			lt, rt := problem.Typ(l, p), problem.Typ(r, p)
			if lt.Kind() == types.Class && rt.Kind() == types.Class && !lt.Equal(rt) {
				if common, ok := p.NearestCommonAncestor(lt.ClassID(), rt.ClassID()); ok {
					l = coerceTo(l, types.NewClass(common), p)
					r = coerceTo(r, types.NewClass(common), p)
				}
			}
		}
		return &problem.Binary{Left: l, Op: n.Op, Right: r, Pos: n.Pos}

	case *problem.Nary:
		elems := make([]problem.Expr, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = inferExpr(el, p)
		}
		return &problem.Nary{Op: n.Op, Elems: elems, Pos: n.Pos}

	case *problem.FunctionCall:
		f := p.GetFunction(n.ID)
		args := make([]problem.Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = coerceTo(inferExpr(arg, p), f.Params[i].Typ, p)
		}
		return &problem.FunctionCall{ID: n.ID, Args: args, Pos: n.Pos}

	case *problem.StrucMetCall:
		m := p.GetMethod(n.Method)
		recv := inferExpr(n.Receiver, p)
		args := make([]problem.Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = coerceTo(inferExpr(arg, p), m.Params[i].Typ, p)
		}
		return &problem.StrucMetCall{Receiver: recv, Method: n.Method, Args: args, Pos: n.Pos}

	case *problem.ClassMetCall:
		m := p.GetMethod(n.Method)
		recv := inferExpr(n.Receiver, p)
		args := make([]problem.Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = coerceTo(inferExpr(arg, p), m.Params[i].Typ, p)
		}
		return &problem.ClassMetCall{Receiver: recv, Method: n.Method, Args: args, Pos: n.Pos}

	case *problem.StrucAttribute:
		return &problem.StrucAttribute{Receiver: inferExpr(n.Receiver, p), Attr: n.Attr, Pos: n.Pos}
	case *problem.ClassAttribute:
		return &problem.ClassAttribute{Receiver: inferExpr(n.Receiver, p), Attr: n.Attr, Pos: n.Pos}

	case *problem.AsClass:
		return &problem.AsClass{E: inferExpr(n.E, p), Target: n.Target, Pos: n.Pos}
	case *problem.AsInterval:
		return &problem.AsInterval{E: inferExpr(n.E, p), Lo: n.Lo, Hi: n.Hi, Pos: n.Pos}
	case *problem.AsInt:
		return &problem.AsInt{E: inferExpr(n.E, p), Pos: n.Pos}
	case *problem.AsReal:
		return &problem.AsReal{E: inferExpr(n.E, p), Pos: n.Pos}

	case *problem.IfThenElse:
		conds := make([]problem.Expr, len(n.Conds))
		for i, c := range n.Conds {
			conds[i] = inferExpr(c, p)
		}
		thens := make([]problem.Expr, len(n.Thens))
		for i, th := range n.Thens {
			thens[i] = inferExpr(th, p)
		}
		els := inferExpr(n.Else, p)
		common := problem.Typ(&problem.IfThenElse{Conds: conds, Thens: thens, Else: els, Pos: n.Pos}, p)
		for i := range thens {
			thens[i] = coerceTo(thens[i], common, p)
		}
		els = coerceTo(els, common, p)
		return &problem.IfThenElse{Conds: conds, Thens: thens, Else: els, Pos: n.Pos}

	case *problem.Quantifier:
		return &problem.Quantifier{Op: n.Op, UID: n.UID, Params: n.Params, Body: inferExpr(n.Body, p), Pos: n.Pos}

	default:
		return e
	}
}
