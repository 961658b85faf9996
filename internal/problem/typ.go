package problem

import "github.com/cwbudde/ccl/internal/types"

// Typ synthesises the type of a resolved expression (spec.md §4.6
// "Synthesis"). It must only be called on expressions that have already
// passed the Resolve pass — no Unresolved* node has a defined type.
func Typ(e Expr, p *Problem) types.Type {
	switch n := e.(type) {
	case *BoolValue:
		return types.NewBool()
	case *IntValue:
		// Singleton-interval rule (spec.md §3 invariant 3): drives precise
		// constant propagation through arithmetic without a separate
		// constant-folding pass.
		return types.NewSingleton(n.Value)
	case *RealValue:
		return types.NewReal()
	case *Variable:
		return p.GetVariable(n.ID).Typ
	case *Parameter:
		return n.Typ
	case *Instance:
		return p.GetInstance(n.ID).Type()
	case *StrucSelf:
		return types.NewStructure(n.ID)
	case *ClassSelf:
		return types.NewClass(n.ID)
	case *FunctionCall:
		return p.GetFunction(n.ID).ReturnType
	case *StrucAttribute:
		return p.GetAttribute(n.Attr).Typ
	case *ClassAttribute:
		return p.GetAttribute(n.Attr).Typ
	case *StrucMetCall:
		return p.GetMethod(n.Method).ReturnType
	case *ClassMetCall:
		return p.GetMethod(n.Method).ReturnType
	case *Unary:
		if n.Op == OpNot {
			return types.NewBool()
		}
		return typUnaryMinus(Typ(n.E, p))
	case *Binary:
		return typBinary(n, p)
	case *Nary:
		return typNary(n, p)
	case *Quantifier:
		return typQuantifier(n, p)
	case *IfThenElse:
		t := Typ(n.Else, p)
		for _, th := range n.Thens {
			t = types.CommonType(t, Typ(th, p), p)
		}
		return t
	case *AsClass:
		return types.NewClass(n.Target)
	case *AsInterval:
		return types.NewInterval(n.Lo, n.Hi)
	case *AsInt:
		return types.NewInt()
	case *AsReal:
		return types.NewReal()
	default:
		return types.NewUndefined()
	}
}

func typUnaryMinus(t types.Type) types.Type {
	if t.Kind() == types.Interval {
		lo, hi := t.Bounds()
		return types.NewInterval(-hi, -lo)
	}
	return t
}

// typBinary implements spec.md §4.6's arithmetic table plus the boolean and
// relational/equality forms, widening Interval to Int wherever Int meets
// Interval.
func typBinary(n *Binary, p *Problem) types.Type {
	switch n.Op {
	case OpEq, OpNe, OpLt, OpLe, OpGe, OpGt, OpAnd, OpOr, OpImplies:
		return types.NewBool()
	case OpDiv:
		return types.NewReal()
	}

	lt, rt := Typ(n.Left, p), Typ(n.Right, p)

	if lt.Kind() == types.Real || rt.Kind() == types.Real {
		return types.NewReal()
	}
	if lt.Kind() == types.Int || rt.Kind() == types.Int {
		return types.NewInt()
	}
	if lt.Kind() == types.Interval && rt.Kind() == types.Interval {
		a, b := lt.Bounds()
		c, d := rt.Bounds()
		switch n.Op {
		case OpAdd:
			return types.NewInterval(a+c, b+d)
		case OpSub:
			return types.NewInterval(a-d, b-c)
		case OpMul:
			products := []int{a * c, a * d, b * c, b * d}
			lo, hi := products[0], products[0]
			for _, v := range products[1:] {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			return types.NewInterval(lo, hi)
		}
	}
	return types.NewUndefined()
}

func typNary(n *Nary, p *Problem) types.Type {
	switch n.Op {
	case OpNaryAnd, OpNaryOr:
		return types.NewBool()
	}
	// Add/Mul: fold pairwise using the same Binary rule, collapsing to Int
	// once any operand is Int (matches Sum/Prod's "interval collapses to
	// Int at aggregation").
	t := types.NewInt()
	if len(n.Elems) > 0 {
		t = Typ(n.Elems[0], p)
	}
	for _, e := range n.Elems[1:] {
		op := OpAdd
		if n.Op == OpNaryMul {
			op = OpMul
		}
		t = typBinary(&Binary{Left: dummy(t), Op: op, Right: e}, p)
	}
	if t.Kind() == types.Interval {
		return types.NewInt()
	}
	return t
}

// dummy re-expresses an already-synthesised accumulator type as a literal
// Expr so typBinary can be reused for pairwise folding in typNary without a
// second "combine two types directly" implementation of the arithmetic
// table. Only its Typ() result is ever consumed.
func dummy(t types.Type) Expr {
	switch t.Kind() {
	case types.Interval:
		lo, _ := t.Bounds()
		return &IntValue{Value: lo}
	case types.Real:
		return &RealValue{Numer: 0, Denom: 1}
	default:
		return &IntValue{Value: 0}
	}
}

func typQuantifier(n *Quantifier, p *Problem) types.Type {
	switch n.Op {
	case QtForall, QtExists:
		return types.NewBool()
	default: // Sum, Prod
		t := Typ(n.Body, p)
		if t.Kind() == types.Interval {
			return types.NewInt()
		}
		return t
	}
}
