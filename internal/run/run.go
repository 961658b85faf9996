// Package run wires the pipeline stages — parse, duplicate check, resolve,
// check, infer, search, reify — into the fixed order spec.md §1 and §7 require, and
// turns the first failure into the single clerr error kind that caused it.
package run

import (
	"github.com/cwbudde/ccl/internal/check"
	"github.com/cwbudde/ccl/internal/parser"
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/reify"
	"github.com/cwbudde/ccl/internal/resolve"
	"github.com/cwbudde/ccl/internal/search"
)

// Outcome mirrors search.Outcome at the package boundary so callers outside
// internal/search don't need to import it directly.
type Outcome = search.Outcome

const (
	NoSolution = search.NoSolution
	Found      = search.Found
	Unknown    = search.UnknownOutcome
)

// Result is everything a front end (cmd/ccl, or a test) needs to report a
// run: the resolved and checked Problem (for rendering its declarations),
// the search verdict, and — only when Outcome is Found — the reified model.
type Result struct {
	Problem *problem.Problem
	Outcome Outcome
	Model   reify.Model
}

// Source runs the full pipeline over program text.
func Source(text string) (Result, error) {
	p, perr := parser.Parse(text)
	if perr != nil {
		return Result{}, perr
	}
	return Problem(p)
}

// Problem runs duplicate check → resolve → well-formedness → type check →
// inference → search → reify over an already-parsed Problem.
func Problem(p *problem.Problem) (Result, error) {
	if derr := p.CheckDuplicates(); derr != nil {
		return Result{}, derr
	}
	if rerr := resolve.Run(p); rerr != nil {
		return Result{}, rerr
	}
	if werr := check.WellFormed(p); werr != nil {
		return Result{}, werr
	}
	if terr := check.TypeCheck(p); terr != nil {
		return Result{}, terr
	}
	check.Infer(p)

	sr := search.Run(p)
	res := Result{Problem: p, Outcome: sr.Outcome}
	if sr.Outcome == Found {
		m := sr.Encoder.Solver().Model()
		res.Model = reify.Run(p, sr.Encoder, m)
	}
	return res, nil
}
