package problem

import (
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/types"
)

// Variable — name, declared type, optional defining expression.
type Variable struct {
	ID   VariableID
	Name string
	Typ  types.Type
	Expr Expr // nil if undefined
	Pos  clerr.Position
}

// FunctionParam is a named, typed parameter of a Function.
type FunctionParam struct {
	Name string
	Typ  types.Type
	Pos  clerr.Position
}

// Function — name, return type, ordered parameter list, optional defining
// expression.
type Function struct {
	ID         FuncID
	Name       string
	Params     []FunctionParam
	ReturnType types.Type
	Expr       Expr
	Pos        clerr.Position
}

// MethodParam is a named, typed parameter of a Method.
type MethodParam struct {
	Name string
	Typ  types.Type
	Pos  clerr.Position
}

// Attribute of a structure or class — name, type, optional defining
// expression whose scope contains `self` bound to the owning entity.
type Attribute struct {
	ID   AttributeID
	Name string
	Typ  types.Type
	Expr Expr
	Pos  clerr.Position
}

// Method of a structure or class — name, parameter list, return type,
// optional defining expression whose scope contains `self` and the
// parameters.
type Method struct {
	ID         MethodID
	Name       string
	Params     []MethodParam
	ReturnType types.Type
	Expr       Expr
	Pos        clerr.Position
}

// Structure — name, attribute list, method list. No inheritance.
type Structure struct {
	ID         StructureID
	Name       string
	Attributes []Attribute
	Methods    []Method
	Pos        clerr.Position
}

// Class — name, optional parent class handle, attribute list, method list.
// Single inheritance; Extends forms a forest (acyclicity is a Problem-level
// invariant checked by resolver phase 1, which rejects a cyclic extends
// chain with a ResolveError).
type Class struct {
	ID         ClassID
	Name       string
	ExtendsName string   // as written by the parser; consumed by resolver phase 1
	Extends    *ClassID // nil at the root of a hierarchy; set by resolver phase 1
	Attributes []Attribute
	Methods    []Method
	Pos        clerr.Position
}

// InstanceRef names the structure-or-class a named Instance was declared
// against, before and after name resolution.
type InstanceRef struct {
	Resolved bool
	Struc    StructureID
	Class    ClassID
	IsClass  bool
	Name     string // unresolved name, retained for diagnostics
	Pos      clerr.Position
}

// Instance — name, structure-or-class-reference.
type Instance struct {
	ID        InstanceID
	Name      string
	Structure InstanceRef
	Pos       clerr.Position
}

func (i Instance) Type() types.Type {
	if i.Structure.IsClass {
		return types.NewClass(i.Structure.Class)
	}
	return types.NewStructure(i.Structure.Struc)
}

// Constraint — name, boolean expression.
type Constraint struct {
	ID   ConstraintID
	Name string
	Expr Expr
	Pos  clerr.Position
}

// Bound is the stopping criterion for an Optimize search, either an integer
// or a fractional (numer/denom) bound — spec.md's supplemented Optimize
// feature, grounded on original_source/src/problem/search.rs.
type Bound struct {
	IsReal       bool
	Int          int
	Numer, Denom int
}

// Search is either Solve or Optimize(expr, bound, minimize).
type Search struct {
	IsOptimize bool
	Expr       Expr
	Bound      Bound
	Minimize   bool
}
