package problem

import (
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/types"
)

// Expr is the closed expression sum (spec.md §3/§4.5), realized as an
// interface implemented by one struct per form rather than a tagged union,
// following the teacher's one-node-type-per-shape AST style.
//
// Before resolution, an expression tree may contain the Unresolved* forms
// produced directly by the parser. After a successful Resolve pass, none of
// those survive (spec.md testable property 2); Variable, Parameter,
// Instance, StrucSelf, ClassSelf, FunctionCall, Struc/ClassAttribute and
// Struc/ClassMetCall take their place.
type Expr interface {
	Position() clerr.Position
}

// ---------- literals ----------

type BoolValue struct {
	Value bool
	Pos   clerr.Position
}

func (e *BoolValue) Position() clerr.Position { return e.Pos }

type IntValue struct {
	Value int
	Pos   clerr.Position
}

func (e *IntValue) Position() clerr.Position { return e.Pos }

// RealValue is held as a fraction (numerator, denominator) rather than a
// float, matching original_source's `Real::from_real(ctx, numer, denom)`
// encoding — this keeps exact rational arithmetic all the way to the SMT
// boundary.
type RealValue struct {
	Numer, Denom int
	Pos          clerr.Position
}

func (e *RealValue) Position() clerr.Position { return e.Pos }

// ---------- pre-resolution forms ----------

type Unresolved struct {
	Name string
	Pos  clerr.Position
}

func (e *Unresolved) Position() clerr.Position { return e.Pos }

type UnresolvedFunCall struct {
	Name string
	Args []Expr
	Pos  clerr.Position
}

func (e *UnresolvedFunCall) Position() clerr.Position { return e.Pos }

type UnresolvedAttribute struct {
	Receiver Expr
	Name     string
	Pos      clerr.Position
}

func (e *UnresolvedAttribute) Position() clerr.Position { return e.Pos }

type UnresolvedMethCall struct {
	Receiver Expr
	Name     string
	Args     []Expr
	Pos      clerr.Position
}

func (e *UnresolvedMethCall) Position() clerr.Position { return e.Pos }

// UnresolvedAs is the parser's representation of a source `e as T`
// coercion (spec.md §6 grammar), before resolver phase 2 has decided which
// of the four concrete As* forms T denotes. Exactly one of ClassName,
// IsInterval, IsInt, IsReal is set by the parser.
type UnresolvedAs struct {
	E          Expr
	ClassName  string
	IsInterval bool
	Lo, Hi     int
	IsInt      bool
	IsReal     bool
	Pos        clerr.Position
}

func (e *UnresolvedAs) Position() clerr.Position { return e.Pos }

// ---------- post-resolution referents ----------

type Variable struct {
	ID  VariableID
	Pos clerr.Position
}

func (e *Variable) Position() clerr.Position { return e.Pos }

// Parameter carries its type inline (rather than requiring a lookup through
// its owner) so that Typ() can compute a parameter reference's type without
// needing the enclosing function/method/quantifier in scope — mirroring
// original_source/src/problem/parameter.rs, where Parameter itself (not
// just a handle to one) is consed directly into the expression tree.
type Parameter struct {
	Ref  ParamRef
	Name string
	Typ  types.Type
	Pos  clerr.Position
}

func (e *Parameter) Position() clerr.Position { return e.Pos }

type Instance struct {
	ID  InstanceID
	Pos clerr.Position
}

func (e *Instance) Position() clerr.Position { return e.Pos }

type StrucSelf struct {
	ID  StructureID
	Pos clerr.Position
}

func (e *StrucSelf) Position() clerr.Position { return e.Pos }

type ClassSelf struct {
	ID  ClassID
	Pos clerr.Position
}

func (e *ClassSelf) Position() clerr.Position { return e.Pos }

type FunctionCall struct {
	ID   FuncID
	Args []Expr
	Pos  clerr.Position
}

func (e *FunctionCall) Position() clerr.Position { return e.Pos }

type StrucAttribute struct {
	Receiver Expr
	Attr     AttributeID
	Pos      clerr.Position
}

func (e *StrucAttribute) Position() clerr.Position { return e.Pos }

type ClassAttribute struct {
	Receiver Expr
	Attr     AttributeID
	Pos      clerr.Position
}

func (e *ClassAttribute) Position() clerr.Position { return e.Pos }

type StrucMetCall struct {
	Receiver Expr
	Method   MethodID
	Args     []Expr
	Pos      clerr.Position
}

func (e *StrucMetCall) Position() clerr.Position { return e.Pos }

type ClassMetCall struct {
	Receiver Expr
	Method   MethodID
	Args     []Expr
	Pos      clerr.Position
}

func (e *ClassMetCall) Position() clerr.Position { return e.Pos }

// ---------- operators ----------

type Unary struct {
	Op  UnaryOp
	E   Expr
	Pos clerr.Position
}

func (e *Unary) Position() clerr.Position { return e.Pos }

type Binary struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	Pos   clerr.Position
}

func (e *Binary) Position() clerr.Position { return e.Pos }

// Nary is the additional solver-friendly flattened form for associative
// chains (see SPEC_FULL.md Open Question 1 decision). Every pass accepts and
// rebuilds it, but neither the parser nor the encoder creates one: and/or
// chains stay nested Binary trees and sum/product quantifier bodies are
// folded directly into solver terms.
type Nary struct {
	Op    NaryOp
	Elems []Expr
	Pos   clerr.Position
}

func (e *Nary) Position() clerr.Position { return e.Pos }

// ---------- quantifiers ----------

// LocalParam is a quantifier-bound parameter: not a Problem-owned entity
// (unlike a function/method Parameter), it lives only inside its Quantifier
// node, per spec.md's "Parameter ... parent (function or method or
// quantifier)".
type LocalParam struct {
	Name string
	Typ  types.Type
	Pos  clerr.Position
}

type Quantifier struct {
	Op     QuantOp
	UID    int
	Params []LocalParam
	Body   Expr
	Pos    clerr.Position
}

func (e *Quantifier) Position() clerr.Position { return e.Pos }

// ---------- conditional ----------

// IfThenElse models `if c1 then t1 elif c2 then t2 ... else e end`: the
// conditions and matching branches are parallel slices, with Else always
// present (a solver-backed language has no notion of "falls through").
type IfThenElse struct {
	Conds []Expr
	Thens []Expr
	Else  Expr
	Pos   clerr.Position
}

func (e *IfThenElse) Position() clerr.Position { return e.Pos }

// ---------- coercions ----------

type AsClass struct {
	E      Expr
	Target ClassID
	Pos    clerr.Position
}

func (e *AsClass) Position() clerr.Position { return e.Pos }

type AsInterval struct {
	E      Expr
	Lo, Hi int
	Pos    clerr.Position
}

func (e *AsInterval) Position() clerr.Position { return e.Pos }

type AsInt struct {
	E   Expr
	Pos clerr.Position
}

func (e *AsInt) Position() clerr.Position { return e.Pos }

type AsReal struct {
	E   Expr
	Pos clerr.Position
}

func (e *AsReal) Position() clerr.Position { return e.Pos }
