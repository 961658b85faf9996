package smt

import (
	"fmt"

	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// Encoder lowers a checked, inferred Problem into Solver terms (spec.md
// §4.7, component H), grounded on original_source/src/smt/*.rs's
// expr-to-term translation, generalized to Go's Solver interface above.
type Encoder struct {
	p *problem.Problem
	s *Solver

	varTerm  map[problem.VariableID]Term
	instTerm map[problem.InstanceID]Term
}

// BuildEncoder builds a fresh Solver with one constant per variable and
// instance and one boolean reification per constraint, and returns the
// Encoder that built it. Callers that only need the Solver (to Check it) can
// use Encode; callers that additionally need to encode further standalone
// expressions against the exact same variable/instance term tables — the
// search driver's objective (spec.md §4.8), the model reifier's
// function/method/attribute queries (§4.9) — keep the Encoder.
func BuildEncoder(p *problem.Problem) *Encoder {
	enc := &Encoder{
		p:        p,
		s:        NewSolver(),
		varTerm:  make(map[problem.VariableID]Term),
		instTerm: make(map[problem.InstanceID]Term),
	}
	enc.declareInstances()
	enc.declareVariables()
	enc.declareConstraints()
	return enc
}

// Encode builds a fresh Solver ready for Check.
func Encode(p *problem.Problem) *Solver {
	return BuildEncoder(p).s
}

// EncodeWithObjective is Encode plus encoding objective (e.g. an Optimize
// directive's objective expression) against the resulting term tables, so
// later strict-improvement assertions stay against the same term.
func EncodeWithObjective(p *problem.Problem, objective problem.Expr) (*Solver, Term) {
	enc := BuildEncoder(p)
	if objective == nil {
		return enc.s, Term{}
	}
	return enc.s, enc.EncodeExpr(objective)
}

// Solver returns the Solver this Encoder built.
func (enc *Encoder) Solver() *Solver { return enc.s }

// EncodeExpr encodes e, with no quantifier-parameter/self context, against
// this encoder's existing variable/instance term tables.
func (enc *Encoder) EncodeExpr(e problem.Expr) Term {
	return enc.encodeExpr(e, nil, Term{})
}

// EncodeExprWithSelf is EncodeExpr but with self bound to receiver — used to
// evaluate an attribute or method body belonging to one specific instance
// during reification.
func (enc *Encoder) EncodeExprWithSelf(e problem.Expr, self Term) Term {
	return enc.encodeExpr(e, nil, self)
}

// InstanceTerm returns the uninterpreted constant standing for instance id.
func (enc *Encoder) InstanceTerm(id problem.InstanceID) Term { return enc.instTerm[id] }

// VariableTerm returns the constant standing for variable id.
func (enc *Encoder) VariableTerm(id problem.VariableID) Term { return enc.varTerm[id] }

func (enc *Encoder) declareInstances() {
	for _, inst := range enc.p.Instances {
		sortName := "Instance"
		if inst.Structure.IsClass {
			sortName = enc.p.GetClass(inst.Structure.Class).Name
		} else {
			sortName = enc.p.GetStructure(inst.Structure.Struc).Name
		}
		enc.instTerm[inst.ID] = enc.s.UninterpretedConst(sortName, inst.Name)
	}
}

func (enc *Encoder) declareVariables() {
	for _, v := range enc.p.Variables {
		term := enc.declarePrimitive(v.Name, v.Typ)
		enc.varTerm[v.ID] = term
		if v.Expr != nil {
			enc.s.Assert(enc.s.Eq(term, enc.encodeExpr(v.Expr, nil, Term{})))
		}
	}
}

// declarePrimitive declares a solver constant matching t, asserting a range
// bound for an Interval-typed declaration at the point of definition
// (spec.md §4.7's "AsInterval... together with an asserted range
// constraint", applied here to a directly interval-typed variable too).
func (enc *Encoder) declarePrimitive(name string, t types.Type) Term {
	switch t.Kind() {
	case types.Bool:
		return enc.s.BoolConst(name)
	case types.Int:
		return enc.s.IntConst(name)
	case types.Real:
		return enc.s.RealConst(name)
	case types.Interval:
		term := enc.s.IntConst(name)
		lo, hi := t.Bounds()
		enc.s.Assert(enc.s.Le(enc.s.IntLit(lo), term))
		enc.s.Assert(enc.s.Le(term, enc.s.IntLit(hi)))
		return term
	case types.Structure:
		domain := enc.instanceNames(problem.Domain(t, enc.p))
		return enc.s.UninterpretedFreeConst(name, enc.p.GetStructure(t.StructureID()).Name, domain)
	case types.Class:
		domain := enc.instanceNames(problem.Domain(t, enc.p))
		return enc.s.UninterpretedFreeConst(name, enc.p.GetClass(t.ClassID()).Name, domain)
	default:
		panic(fmt.Sprintf("smt: cannot declare a constant of type %s", t))
	}
}

func (enc *Encoder) instanceNames(domain []problem.Expr) []string {
	out := make([]string, 0, len(domain))
	for _, e := range domain {
		id := e.(*problem.Instance).ID
		out = append(out, enc.p.GetInstance(id).Name)
	}
	return out
}

func (enc *Encoder) declareConstraints() {
	for _, c := range enc.p.Constraints {
		body := enc.encodeExpr(c.Expr, nil, Term{})
		reif := enc.s.BoolConst("constraint$" + c.Name)
		enc.s.Assert(enc.s.Eq(reif, body))
		enc.s.Assert(reif)
	}
}

// paramEnv binds a quantifier/function/method parameter's ParamRef to its
// already-encoded solver Term, for the duration of one call/enumeration
// unfolding. Parameter substitution happens at the Expr level (via
// problem.Substitute) before encoding reaches leaves, so in practice this
// map is always empty by the time encodeExpr is called — kept as the
// signature's extension point documented in original_source's own
// evaluator, which threads an explicit parameter environment alongside
// substitution for the same defensive reason.
type paramEnv map[problem.ParamRef]Term

func (enc *Encoder) encodeExpr(e problem.Expr, env paramEnv, self Term) Term {
	switch n := e.(type) {
	case *problem.BoolValue:
		return enc.s.BoolLit(n.Value)
	case *problem.IntValue:
		return enc.s.IntLit(n.Value)
	case *problem.RealValue:
		return enc.s.RealLit(n.Numer, n.Denom)
	case *problem.Variable:
		return enc.varTerm[n.ID]
	case *problem.Parameter:
		if t, ok := env[n.Ref]; ok {
			return t
		}
		panic("smt: unbound parameter reached the encoder; the parser/resolver should never leave one unsubstituted")
	case *problem.Instance:
		return enc.instTerm[n.ID]
	case *problem.StrucSelf, *problem.ClassSelf:
		return self
	case *problem.FunctionCall:
		f := enc.p.GetFunction(n.ID)
		refs := make([]problem.ParamRef, len(f.Params))
		for i := range f.Params {
			refs[i] = problem.ParamRef{Owner: problem.ParamOfFunction, FuncID: n.ID, Index: i}
		}
		return enc.encodeCall(f.Expr, refs, n.Args, nil, env, self)
	case *problem.StrucAttribute:
		recv := enc.encodeExpr(n.Receiver, env, self)
		return enc.encodeAttribute(n.Receiver, n.Attr, recv)
	case *problem.ClassAttribute:
		recv := enc.encodeExpr(n.Receiver, env, self)
		return enc.encodeAttribute(n.Receiver, n.Attr, recv)
	case *problem.StrucMetCall:
		m := enc.p.GetMethod(n.Method)
		refs := make([]problem.ParamRef, len(m.Params))
		for i := range m.Params {
			refs[i] = problem.ParamRef{Owner: problem.ParamOfStrucMethod, StrucID: n.Method.StrucID, MethodIndex: n.Method.Index, Index: i}
		}
		return enc.encodeCall(m.Expr, refs, n.Args, n.Receiver, env, enc.encodeExpr(n.Receiver, env, self))
	case *problem.ClassMetCall:
		m := enc.p.GetMethod(n.Method)
		refs := make([]problem.ParamRef, len(m.Params))
		for i := range m.Params {
			refs[i] = problem.ParamRef{Owner: problem.ParamOfClassMethod, ClassID: n.Method.ClassID, MethodIndex: n.Method.Index, Index: i}
		}
		return enc.encodeCall(m.Expr, refs, n.Args, n.Receiver, env, enc.encodeExpr(n.Receiver, env, self))
	case *problem.Unary:
		v := enc.encodeExpr(n.E, env, self)
		if n.Op == problem.OpNot {
			return enc.s.Not(v)
		}
		return enc.s.Neg(v)
	case *problem.Binary:
		return enc.encodeBinary(n, env, self)
	case *problem.Nary:
		return enc.encodeNary(n, env, self)
	case *problem.Quantifier:
		return enc.encodeQuantifier(n, env, self)
	case *problem.IfThenElse:
		return enc.encodeIfThenElse(n, env, self)
	case *problem.AsClass:
		return enc.encodeExpr(n.E, env, self)
	case *problem.AsInterval:
		v := enc.encodeExpr(n.E, env, self)
		enc.s.Assert(enc.s.Le(enc.s.IntLit(n.Lo), v))
		enc.s.Assert(enc.s.Le(v, enc.s.IntLit(n.Hi)))
		return v
	case *problem.AsInt:
		return enc.encodeExpr(n.E, env, self)
	case *problem.AsReal:
		return enc.s.ToReal(enc.encodeExpr(n.E, env, self))
	default:
		panic(fmt.Sprintf("smt: unencodable expression %T", e))
	}
}

// encodeAttribute reads an attribute off a receiver whose static type is
// known, by inlining the attribute's own defining expression with self
// bound to the receiver — attributes have no solver-level field selector,
// so this mirrors call inlining rather than introducing datatype accessors.
func (enc *Encoder) encodeAttribute(receiver problem.Expr, attr problem.AttributeID, recv Term) Term {
	a := enc.p.GetAttribute(attr)
	body := problem.SubstituteSelf(a.Expr, receiver)
	return enc.encodeExpr(body, nil, recv)
}

func (enc *Encoder) encodeCall(body problem.Expr, refs []problem.ParamRef, args []problem.Expr, receiver problem.Expr, env paramEnv, self Term) Term {
	if receiver != nil {
		body = problem.SubstituteSelf(body, receiver)
	}
	for i, ref := range refs {
		body = problem.Substitute(body, ref, args[i])
	}
	return enc.encodeExpr(body, env, self)
}

func (enc *Encoder) encodeBinary(n *problem.Binary, env paramEnv, self Term) Term {
	l := enc.encodeExpr(n.Left, env, self)
	r := enc.encodeExpr(n.Right, env, self)
	switch n.Op {
	case problem.OpEq:
		return enc.s.Eq(l, r)
	case problem.OpNe:
		return enc.s.Ne(l, r)
	case problem.OpLt:
		return enc.s.Lt(l, r)
	case problem.OpLe:
		return enc.s.Le(l, r)
	case problem.OpGe:
		return enc.s.Ge(l, r)
	case problem.OpGt:
		return enc.s.Gt(l, r)
	case problem.OpAnd:
		return enc.s.And(l, r)
	case problem.OpOr:
		return enc.s.Or(l, r)
	case problem.OpImplies:
		return enc.s.Implies(l, r)
	case problem.OpAdd:
		return enc.s.Add(l, r)
	case problem.OpSub:
		return enc.s.Sub(l, r)
	case problem.OpMul:
		return enc.s.Mul(l, r)
	default: // OpDiv
		return enc.s.Div(l, r)
	}
}

func (enc *Encoder) encodeNary(n *problem.Nary, env paramEnv, self Term) Term {
	terms := make([]Term, len(n.Elems))
	for i, el := range n.Elems {
		terms[i] = enc.encodeExpr(el, env, self)
	}
	switch n.Op {
	case problem.OpNaryAnd:
		return foldTerms(terms, enc.s.BoolLit(true), enc.s.And)
	case problem.OpNaryOr:
		return foldTerms(terms, enc.s.BoolLit(false), enc.s.Or)
	case problem.OpNaryAdd:
		return foldTerms(terms, enc.s.IntLit(0), enc.s.Add)
	default: // OpNaryMul
		return foldTerms(terms, enc.s.IntLit(1), enc.s.Mul)
	}
}

func foldTerms(terms []Term, identity Term, combine func(a, b Term) Term) Term {
	if len(terms) == 0 {
		return identity
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = combine(acc, t)
	}
	return acc
}

func (enc *Encoder) encodeIfThenElse(n *problem.IfThenElse, env paramEnv, self Term) Term {
	els := enc.encodeExpr(n.Else, env, self)
	for i := len(n.Conds) - 1; i >= 0; i-- {
		cond := enc.encodeExpr(n.Conds[i], env, self)
		then := enc.encodeExpr(n.Thens[i], env, self)
		els = enc.s.Ite(cond, then, els)
	}
	return els
}

// encodeQuantifier expands Forall/Exists/Sum/Prod by enumerating the
// bounded parameters' Cartesian product and folding the per-point encodings
// with the matching connective (spec.md §4.7's "lexicographic odometer...
// leftmost index fastest").
func (enc *Encoder) encodeQuantifier(n *problem.Quantifier, env paramEnv, self Term) Term {
	domains := make([][]problem.Expr, len(n.Params))
	for i, param := range n.Params {
		domains[i] = problem.Domain(param.Typ, enc.p)
	}
	combos := odometer(domains)

	terms := make([]Term, len(combos))
	for ci, combo := range combos {
		body := n.Body
		for i, val := range combo {
			ref := problem.ParamRef{Owner: problem.ParamOfQuantifier, QuantifierUID: n.UID, Index: i}
			body = problem.Substitute(body, ref, val)
		}
		terms[ci] = enc.encodeExpr(body, env, self)
	}

	switch n.Op {
	case problem.QtForall:
		return foldTerms(terms, enc.s.BoolLit(true), enc.s.And)
	case problem.QtExists:
		return foldTerms(terms, enc.s.BoolLit(false), enc.s.Or)
	case problem.QtSum:
		return foldTerms(terms, enc.s.IntLit(0), enc.s.Add)
	default: // QtProd
		return foldTerms(terms, enc.s.IntLit(1), enc.s.Mul)
	}
}

// odometer returns the Cartesian product of domains with domains[0]
// cycling fastest (spec.md's stated enumeration order).
func odometer(domains [][]problem.Expr) [][]problem.Expr {
	if len(domains) == 0 {
		return [][]problem.Expr{{}}
	}
	rest := odometer(domains[1:])
	out := make([][]problem.Expr, 0, len(domains[0])*len(rest))
	for _, r := range rest {
		for _, first := range domains[0] {
			combo := make([]problem.Expr, 0, len(r)+1)
			combo = append(combo, first)
			combo = append(combo, r...)
			out = append(out, combo)
		}
	}
	return out
}
