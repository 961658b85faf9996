// Package search implements the search driver (spec.md §4.8): it runs the
// encoded Problem's Solve or Optimize directive against the SMT backend and
// reports one of Found/NoSolution/Unknown.
package search

import (
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/smt"
)

// Outcome is the three-way verdict Run reports, matching spec.md §4.8's
// "on sat extract a model; on unsat return NoSolution; on unknown return
// Unknown".
type Outcome uint8

const (
	NoSolution Outcome = iota
	Found
	UnknownOutcome
)

// Result bundles the outcome with the encoder a found model can be read
// back through: Encoder.Solver().Model() for the raw solver model, or the
// Encoder itself for reification (package reify) of variables, function
// tables and instance attributes/methods.
type Result struct {
	Outcome Outcome
	Encoder *smt.Encoder
}

// Run encodes p once and drives its declared Search (spec.md §4.8). For a
// plain Solve this is a single check. For Optimize(expr, bound, minimize)
// it iteratively tightens the objective: after each sat model it asserts
// that the next model must strictly improve on the previous objective
// value, repeating until the configured bound is reached or the solver
// reports unsat or unknown — the last sat model found is returned.
func Run(p *problem.Problem) Result {
	enc := smt.BuildEncoder(p)
	s := enc.Solver()

	if !p.Search.IsOptimize {
		return checkOnce(enc, s)
	}

	objective := enc.EncodeExpr(p.Search.Expr)
	var found bool

	for {
		switch s.Check() {
		case smt.Sat:
			m := s.Model()
			found = true
			if boundReached(p, objective, m) {
				return Result{Outcome: Found, Encoder: enc}
			}
			tightenObjective(s, objective, m, p.Search.Minimize)
		case smt.Unsat:
			if found {
				return Result{Outcome: Found, Encoder: enc}
			}
			return Result{Outcome: NoSolution}
		default:
			if found {
				return Result{Outcome: Found, Encoder: enc}
			}
			return Result{Outcome: UnknownOutcome}
		}
	}
}

func checkOnce(enc *smt.Encoder, s *smt.Solver) Result {
	switch s.Check() {
	case smt.Sat:
		return Result{Outcome: Found, Encoder: enc}
	case smt.Unsat:
		return Result{Outcome: NoSolution}
	default:
		return Result{Outcome: UnknownOutcome}
	}
}

// tightenObjective asserts that the next model must strictly improve on the
// objective value found in m.
func tightenObjective(s *smt.Solver, objective smt.Term, m *smt.Model, minimize bool) {
	v := m.Eval(objective)
	current := s.RealLit(v.Numer, v.Denom)
	if minimize {
		s.Assert(s.Lt(objective, current))
	} else {
		s.Assert(s.Gt(objective, current))
	}
}

// boundReached reports whether the objective's value in m has reached
// p.Search.Bound, per the direction implied by p.Search.Minimize.
func boundReached(p *problem.Problem, objective smt.Term, m *smt.Model) bool {
	v := m.Eval(objective)
	b := p.Search.Bound

	boundNumer, boundDenom := b.Int, 1
	if b.IsReal {
		boundNumer, boundDenom = b.Numer, b.Denom
	}

	// Compare numer/denom against boundNumer/boundDenom via cross
	// multiplication, both denominators being positive by construction.
	lhs := v.Numer * boundDenom
	rhs := boundNumer * v.Denom
	if p.Search.Minimize {
		return lhs <= rhs
	}
	return lhs >= rhs
}
