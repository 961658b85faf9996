// Package smt implements the SMT encoder (spec.md §4.7, component H) and
// the Solver capability it targets.
//
// spec.md treats the solver as an external collaborator, "specified only by
// its interface" (§1: "the SMT solver itself... treated as an opaque
// capability offering boolean/integer/real terms, equality, arithmetic,
// quantifier-free first-order connectives, uninterpreted datatypes, and
// check/get_model"). No real SMT binding exists anywhere in the example
// pack (confirmed: no z3/go-sat/minisat/cvc5 import appears in any example
// repo's go.mod), so Solver is backed here by a from-scratch, documented
// brute-force implementation rather than a fabricated dependency — see
// DESIGN.md for the justification this package is named in.
package smt

import "fmt"

// Sort is the closed set of term sorts the encoder ever produces.
type Sort uint8

const (
	SortBool Sort = iota
	SortInt
	SortReal
	SortUninterpreted
)

type termOp uint8

const (
	opConst termOp = iota
	opBoolLit
	opIntLit
	opRealLit
	opUninterpretedLit
	opNot
	opAnd
	opOr
	opImplies
	opEq
	opNe
	opLt
	opLe
	opGe
	opGt
	opAdd
	opSub
	opMul
	opDiv
	opNeg
	opToReal
	opIte
)

// Term is an opaque handle into one solver's expression tree — the only
// currency passed between the encoder and the solver.
type Term struct {
	op       termOp
	sort     Sort
	name     string // opConst, opUninterpretedLit
	sortName string // opUninterpretedLit's uninterpreted sort tag (structure/class)
	boolLit  bool
	numer    int
	denom    int
	domain   []string // opConst with sort==SortUninterpreted: the finite set of instance names it may denote
	children []*Term
}

// Result is the three-way verdict of spec.md §4.8.
type Result uint8

const (
	Unsat Result = iota
	Sat
	Unknown
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Solver accumulates named constants and assertions and answers check/model
// queries. It is not safe for concurrent use, matching spec.md §5's
// single-threaded, synchronous execution model.
type Solver struct {
	consts  []*Term
	uninterp []*Term // uninterpreted-sort literals (instance constants), declared once
	asserts []*Term

	// searchBound is the symmetric window [-searchBound, +searchBound]
	// brute-force assignment search uses for every Int/Real constant. An
	// Interval-typed declaration's range is only asserted as a constraint;
	// it does not narrow or widen this window, so a value outside the
	// window is never tried. Declared in the open so a caller (e.g. the search driver revising
	// an optimization bound) can widen it without rebuilding the solver.
	searchBound int
	// realDenom is the fixed denominator brute-force search tries for a
	// Real constant's numerator, trading completeness for termination — a
	// hand-rolled backend's documented limitation (see DESIGN.md).
	realDenom int

	lastModel *Model
}

// NewSolver returns an empty solver with the default search window used by
// every end-to-end scenario in spec.md §S1-S6 (their variables and
// instances all fit comfortably inside it).
func NewSolver() *Solver {
	return &Solver{searchBound: 16, realDenom: 4}
}

func (s *Solver) SetSearchBound(n int) { s.searchBound = n }

// ---------- term constructors ----------

func (s *Solver) BoolConst(name string) Term {
	t := &Term{op: opConst, sort: SortBool, name: name}
	s.consts = append(s.consts, t)
	return *t
}

func (s *Solver) IntConst(name string) Term {
	t := &Term{op: opConst, sort: SortInt, name: name}
	s.consts = append(s.consts, t)
	return *t
}

func (s *Solver) RealConst(name string) Term {
	t := &Term{op: opConst, sort: SortReal, name: name}
	s.consts = append(s.consts, t)
	return *t
}

// UninterpretedConst declares a constant of an uninterpreted sort (one per
// structure/class, spec.md §4.7's "instances are encoded as elements of an
// uninterpreted sort"). instanceName is the source-level instance name this
// constant denotes, recorded so get_model's printed term can be split back
// into it (spec.md's "split the printed term on whitespace and strip
// trailing )").
func (s *Solver) UninterpretedConst(sortName, instanceName string) Term {
	t := &Term{op: opUninterpretedLit, sort: SortUninterpreted, sortName: sortName, name: instanceName}
	s.uninterp = append(s.uninterp, t)
	return *t
}

// UninterpretedFreeConst declares a free constant of an uninterpreted sort
// whose value the solver must choose from domain — the finite instance-name
// set a Structure/Class-typed variable ranges over (spec.md §4.7's "the set
// of instance handles whose declared structure or class is the parameter's
// type or a descendant").
func (s *Solver) UninterpretedFreeConst(name, sortName string, domain []string) Term {
	t := &Term{op: opConst, sort: SortUninterpreted, name: name, sortName: sortName, domain: domain}
	s.consts = append(s.consts, t)
	return *t
}

func (Solver) BoolLit(b bool) Term { return Term{op: opBoolLit, sort: SortBool, boolLit: b} }
func (Solver) IntLit(n int) Term   { return Term{op: opIntLit, sort: SortInt, numer: n, denom: 1} }
func (Solver) RealLit(numer, denom int) Term {
	return Term{op: opRealLit, sort: SortReal, numer: numer, denom: denom}
}

func un(op termOp, sort Sort, a Term) Term    { return Term{op: op, sort: sort, children: []*Term{&a}} }
func bin(op termOp, sort Sort, a, b Term) Term { return Term{op: op, sort: sort, children: []*Term{&a, &b}} }

func (Solver) Not(a Term) Term          { return un(opNot, SortBool, a) }
func (Solver) Neg(a Term) Term          { return un(opNeg, a.sort, a) }
func (Solver) ToReal(a Term) Term       { return un(opToReal, SortReal, a) }
func (Solver) And(a, b Term) Term       { return bin(opAnd, SortBool, a, b) }
func (Solver) Or(a, b Term) Term        { return bin(opOr, SortBool, a, b) }
func (Solver) Implies(a, b Term) Term   { return bin(opImplies, SortBool, a, b) }
func (Solver) Eq(a, b Term) Term        { return bin(opEq, SortBool, a, b) }
func (Solver) Ne(a, b Term) Term        { return bin(opNe, SortBool, a, b) }
func (Solver) Lt(a, b Term) Term        { return bin(opLt, SortBool, a, b) }
func (Solver) Le(a, b Term) Term        { return bin(opLe, SortBool, a, b) }
func (Solver) Ge(a, b Term) Term        { return bin(opGe, SortBool, a, b) }
func (Solver) Gt(a, b Term) Term        { return bin(opGt, SortBool, a, b) }
func (Solver) Add(a, b Term) Term       { return bin(opAdd, resultSort(a, b), a, b) }
func (Solver) Sub(a, b Term) Term       { return bin(opSub, resultSort(a, b), a, b) }
func (Solver) Mul(a, b Term) Term       { return bin(opMul, resultSort(a, b), a, b) }
func (Solver) Div(a, b Term) Term       { return bin(opDiv, SortReal, a, b) }

func (Solver) Ite(cond, then, els Term) Term {
	return Term{op: opIte, sort: then.sort, children: []*Term{&cond, &then, &els}}
}

func resultSort(a, b Term) Sort {
	if a.sort == SortReal || b.sort == SortReal {
		return SortReal
	}
	return SortInt
}

// Assert adds a boolean term as a required constraint.
func (s *Solver) Assert(t Term) {
	cp := t
	s.asserts = append(s.asserts, &cp)
}

func (s *Solver) String() string {
	return fmt.Sprintf("Solver{%d consts, %d uninterpreted, %d asserts}", len(s.consts), len(s.uninterp), len(s.asserts))
}
