package problem

// SubstituteSelf replaces every StrucSelf/ClassSelf node throughout e with
// receiver — the SMT encoder's other inlining primitive alongside
// Substitute, used when unfolding a method call: the callee body's `self`
// becomes whatever expression the call's receiver was (spec.md §4.7's
// method-call unfolding).
func SubstituteSelf(e Expr, receiver Expr) Expr {
	switch n := e.(type) {
	case *BoolValue, *IntValue, *RealValue, *Variable, *Parameter, *Instance:
		return e
	case *StrucSelf, *ClassSelf:
		return receiver
	case *FunctionCall:
		return &FunctionCall{ID: n.ID, Args: subSelfAll(n.Args, receiver), Pos: n.Pos}
	case *StrucAttribute:
		return &StrucAttribute{Receiver: SubstituteSelf(n.Receiver, receiver), Attr: n.Attr, Pos: n.Pos}
	case *ClassAttribute:
		return &ClassAttribute{Receiver: SubstituteSelf(n.Receiver, receiver), Attr: n.Attr, Pos: n.Pos}
	case *StrucMetCall:
		return &StrucMetCall{
			Receiver: SubstituteSelf(n.Receiver, receiver),
			Method:   n.Method,
			Args:     subSelfAll(n.Args, receiver),
			Pos:      n.Pos,
		}
	case *ClassMetCall:
		return &ClassMetCall{
			Receiver: SubstituteSelf(n.Receiver, receiver),
			Method:   n.Method,
			Args:     subSelfAll(n.Args, receiver),
			Pos:      n.Pos,
		}
	case *Unary:
		return &Unary{Op: n.Op, E: SubstituteSelf(n.E, receiver), Pos: n.Pos}
	case *Binary:
		return &Binary{Left: SubstituteSelf(n.Left, receiver), Op: n.Op, Right: SubstituteSelf(n.Right, receiver), Pos: n.Pos}
	case *Nary:
		return &Nary{Op: n.Op, Elems: subSelfAll(n.Elems, receiver), Pos: n.Pos}
	case *Quantifier:
		return &Quantifier{Op: n.Op, UID: n.UID, Params: n.Params, Body: SubstituteSelf(n.Body, receiver), Pos: n.Pos}
	case *IfThenElse:
		return &IfThenElse{
			Conds: subSelfAll(n.Conds, receiver),
			Thens: subSelfAll(n.Thens, receiver),
			Else:  SubstituteSelf(n.Else, receiver),
			Pos:   n.Pos,
		}
	case *AsClass:
		return &AsClass{E: SubstituteSelf(n.E, receiver), Target: n.Target, Pos: n.Pos}
	case *AsInterval:
		return &AsInterval{E: SubstituteSelf(n.E, receiver), Lo: n.Lo, Hi: n.Hi, Pos: n.Pos}
	case *AsInt:
		return &AsInt{E: SubstituteSelf(n.E, receiver), Pos: n.Pos}
	case *AsReal:
		return &AsReal{E: SubstituteSelf(n.E, receiver), Pos: n.Pos}
	default:
		return e
	}
}

func subSelfAll(es []Expr, receiver Expr) []Expr {
	if es == nil {
		return nil
	}
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = SubstituteSelf(e, receiver)
	}
	return out
}
