package problem

// Substitute replaces every Parameter bound to ref throughout e with value,
// leaving everything else untouched. It is the enumeration primitive the
// SMT encoder uses both to expand a quantifier body over each point of its
// bounded domain and to inline a function/method call by substituting its
// parameters with the (already encoded-compatible) argument expressions
// (spec.md §4.7 "Sum/Prod/forall/exists expand by lexicographic
// enumeration, not SMT quantifiers"; method-call/function-call unfolding is
// named explicitly for model reification and applies equally to inlining a
// call site during encoding, since the Solver interface carries no
// uninterpreted-function symbol).
//
// e is never mutated in place: Substitute returns a fresh tree sharing
// unaffected subtrees, matching the rest of the package's "passes return
// fresh values" discipline.
func Substitute(e Expr, ref ParamRef, value Expr) Expr {
	switch n := e.(type) {
	case *BoolValue, *IntValue, *RealValue:
		return e
	case *Variable:
		return e
	case *Parameter:
		if n.Ref == ref {
			return value
		}
		return e
	case *Instance, *StrucSelf, *ClassSelf:
		return e
	case *FunctionCall:
		return &FunctionCall{ID: n.ID, Args: substituteAll(n.Args, ref, value), Pos: n.Pos}
	case *StrucAttribute:
		return &StrucAttribute{Receiver: Substitute(n.Receiver, ref, value), Attr: n.Attr, Pos: n.Pos}
	case *ClassAttribute:
		return &ClassAttribute{Receiver: Substitute(n.Receiver, ref, value), Attr: n.Attr, Pos: n.Pos}
	case *StrucMetCall:
		return &StrucMetCall{
			Receiver: Substitute(n.Receiver, ref, value),
			Method:   n.Method,
			Args:     substituteAll(n.Args, ref, value),
			Pos:      n.Pos,
		}
	case *ClassMetCall:
		return &ClassMetCall{
			Receiver: Substitute(n.Receiver, ref, value),
			Method:   n.Method,
			Args:     substituteAll(n.Args, ref, value),
			Pos:      n.Pos,
		}
	case *Unary:
		return &Unary{Op: n.Op, E: Substitute(n.E, ref, value), Pos: n.Pos}
	case *Binary:
		return &Binary{Left: Substitute(n.Left, ref, value), Op: n.Op, Right: Substitute(n.Right, ref, value), Pos: n.Pos}
	case *Nary:
		return &Nary{Op: n.Op, Elems: substituteAll(n.Elems, ref, value), Pos: n.Pos}
	case *Quantifier:
		// A nested quantifier with the same uid cannot occur (UIDs are
		// assigned per quantifier node at parse time), so recursing
		// unconditionally into Body is always correct.
		return &Quantifier{Op: n.Op, UID: n.UID, Params: n.Params, Body: Substitute(n.Body, ref, value), Pos: n.Pos}
	case *IfThenElse:
		return &IfThenElse{
			Conds: substituteAll(n.Conds, ref, value),
			Thens: substituteAll(n.Thens, ref, value),
			Else:  Substitute(n.Else, ref, value),
			Pos:   n.Pos,
		}
	case *AsClass:
		return &AsClass{E: Substitute(n.E, ref, value), Target: n.Target, Pos: n.Pos}
	case *AsInterval:
		return &AsInterval{E: Substitute(n.E, ref, value), Lo: n.Lo, Hi: n.Hi, Pos: n.Pos}
	case *AsInt:
		return &AsInt{E: Substitute(n.E, ref, value), Pos: n.Pos}
	case *AsReal:
		return &AsReal{E: Substitute(n.E, ref, value), Pos: n.Pos}
	default:
		return e
	}
}

func substituteAll(es []Expr, ref ParamRef, value Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Substitute(e, ref, value)
	}
	return out
}

// IsSame reports structural equality of two resolved expression trees —
// same shape, same handles, same literal values. No pass or test in this
// repository calls it.
func IsSame(a, b Expr) bool {
	switch x := a.(type) {
	case *BoolValue:
		y, ok := b.(*BoolValue)
		return ok && x.Value == y.Value
	case *IntValue:
		y, ok := b.(*IntValue)
		return ok && x.Value == y.Value
	case *RealValue:
		y, ok := b.(*RealValue)
		return ok && x.Numer == y.Numer && x.Denom == y.Denom
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.ID == y.ID
	case *Parameter:
		y, ok := b.(*Parameter)
		return ok && x.Ref == y.Ref
	case *Instance:
		y, ok := b.(*Instance)
		return ok && x.ID == y.ID
	case *StrucSelf:
		y, ok := b.(*StrucSelf)
		return ok && x.ID == y.ID
	case *ClassSelf:
		y, ok := b.(*ClassSelf)
		return ok && x.ID == y.ID
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		return ok && x.ID == y.ID && isSameAll(x.Args, y.Args)
	case *StrucAttribute:
		y, ok := b.(*StrucAttribute)
		return ok && x.Attr == y.Attr && IsSame(x.Receiver, y.Receiver)
	case *ClassAttribute:
		y, ok := b.(*ClassAttribute)
		return ok && x.Attr == y.Attr && IsSame(x.Receiver, y.Receiver)
	case *StrucMetCall:
		y, ok := b.(*StrucMetCall)
		return ok && x.Method == y.Method && IsSame(x.Receiver, y.Receiver) && isSameAll(x.Args, y.Args)
	case *ClassMetCall:
		y, ok := b.(*ClassMetCall)
		return ok && x.Method == y.Method && IsSame(x.Receiver, y.Receiver) && isSameAll(x.Args, y.Args)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && IsSame(x.E, y.E)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && IsSame(x.Left, y.Left) && IsSame(x.Right, y.Right)
	case *Nary:
		y, ok := b.(*Nary)
		return ok && x.Op == y.Op && isSameAll(x.Elems, y.Elems)
	case *Quantifier:
		y, ok := b.(*Quantifier)
		return ok && x.Op == y.Op && x.UID == y.UID && IsSame(x.Body, y.Body)
	case *IfThenElse:
		y, ok := b.(*IfThenElse)
		return ok && isSameAll(x.Conds, y.Conds) && isSameAll(x.Thens, y.Thens) && IsSame(x.Else, y.Else)
	case *AsClass:
		y, ok := b.(*AsClass)
		return ok && x.Target == y.Target && IsSame(x.E, y.E)
	case *AsInterval:
		y, ok := b.(*AsInterval)
		return ok && x.Lo == y.Lo && x.Hi == y.Hi && IsSame(x.E, y.E)
	case *AsInt:
		y, ok := b.(*AsInt)
		return ok && IsSame(x.E, y.E)
	case *AsReal:
		y, ok := b.(*AsReal)
		return ok && IsSame(x.E, y.E)
	default:
		return false
	}
}

func isSameAll(as, bs []Expr) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !IsSame(as[i], bs[i]) {
			return false
		}
	}
	return true
}
