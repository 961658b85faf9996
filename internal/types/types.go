// Package types implements the closed Type sum and its subtype/common-type
// lattice (spec.md component A): Bool, Int, Real, Interval, Structure, Class
// and Undefined, with conformance, subtyping and least-upper-bound defined
// over that lattice.
package types

import "fmt"

// Kind discriminates the closed Type sum.
type Kind uint8

const (
	Undefined Kind = iota
	Bool
	Int
	Real
	Interval
	Structure
	Class
	// UnresolvedName is transient, parser-only state: a type annotation that
	// names a structure/class not yet looked up against the type-name
	// environment. It never survives past resolver phase 1 (spec.md §4.4),
	// the same way Undefined never survives past type checking.
	UnresolvedName
)

// StructureID and ClassID are dense handles into the Problem's structure and
// class tables. A handle is an identity: two handles are equal iff they
// denote the same entity.
type StructureID int
type ClassID int

// Type is the closed sum Bool | Int | Real | Interval(lo,hi) | Structure(h)
// | Class(h) | Undefined. The zero Type is Undefined.
type Type struct {
	kind      Kind
	lo, hi    int
	structure StructureID
	class     ClassID
	name      string // valid only when kind == UnresolvedName
}

func NewBool() Type { return Type{kind: Bool} }
func NewInt() Type  { return Type{kind: Int} }
func NewReal() Type { return Type{kind: Real} }
func NewUndefined() Type { return Type{kind: Undefined} }

// NewInterval builds Interval(lo,hi). It does not itself check lo<=hi —
// that invariant is enforced by the well-formedness checker (spec.md §4.5),
// not the type constructor, so that an out-of-order interval can still be
// represented long enough to be reported as an IntervalError.
func NewInterval(lo, hi int) Type { return Type{kind: Interval, lo: lo, hi: hi} }

func NewStructure(id StructureID) Type { return Type{kind: Structure, structure: id} }
func NewClass(id ClassID) Type         { return Type{kind: Class, class: id} }

// NewUnresolvedName builds the transient pre-resolution placeholder for a
// type annotation that names a structure or class.
func NewUnresolvedName(name string) Type { return Type{kind: UnresolvedName, name: name} }

func (t Type) IsUnresolvedName() bool { return t.kind == UnresolvedName }
func (t Type) Name() string           { return t.name }

// NewSingleton returns the singleton interval Interval(n,n) — the type
// synthesised for an integer literal n (spec.md §3 invariant 3).
func NewSingleton(n int) Type { return NewInterval(n, n) }

func (t Type) Kind() Kind { return t.kind }
func (t Type) Bounds() (lo, hi int) { return t.lo, t.hi }
func (t Type) StructureID() StructureID { return t.structure }
func (t Type) ClassID() ClassID         { return t.class }

func (t Type) IsBool() bool      { return t.kind == Bool }
func (t Type) IsInterval() bool  { return t.kind == Interval }
func (t Type) IsStructure() bool { return t.kind == Structure }
func (t Type) IsClass() bool     { return t.kind == Class }
func (t Type) IsUndefined() bool { return t.kind == Undefined }

// IsInteger is Int | Interval.
func (t Type) IsInteger() bool { return t.kind == Int || t.kind == Interval }

// IsNumber is IsInteger | Real.
func (t Type) IsNumber() bool { return t.IsInteger() || t.kind == Real }

// IsBounded reports whether t has a finite set of values: Bool, Interval,
// or a Structure/Class (whose instance set is finite by construction —
// boundedness for those is verified against the Problem by the caller,
// see Hierarchy.HasFiniteInstances).
func (t Type) IsBounded(h Hierarchy) bool {
	switch t.kind {
	case Bool, Interval:
		return true
	case Structure, Class:
		return h.HasFiniteInstances(t)
	default:
		return false
	}
}

func (t Type) Equal(u Type) bool {
	if t.kind != u.kind {
		return false
	}
	switch t.kind {
	case Interval:
		return t.lo == u.lo && t.hi == u.hi
	case Structure:
		return t.structure == u.structure
	case Class:
		return t.class == u.class
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.kind {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Real:
		return "Real"
	case Interval:
		return fmt.Sprintf("%d..%d", t.lo, t.hi)
	case Structure:
		return fmt.Sprintf("struct#%d", t.structure)
	case Class:
		return fmt.Sprintf("class#%d", t.class)
	case UnresolvedName:
		return t.name + "?"
	default:
		return "Undefined"
	}
}

// Hierarchy is the class-inheritance and instance-enumeration capability a
// Problem offers to this package, kept as a narrow interface so that types
// has no import-time dependency on the problem package (avoiding a cycle,
// since Problem stores Types).
type Hierarchy interface {
	// IsAncestor reports whether ancestor is class or a transitive parent of of.
	IsAncestor(ancestor, of ClassID) bool
	// NearestCommonAncestor returns the closest class that is an ancestor of
	// (or equal to) both a and b, if one exists.
	NearestCommonAncestor(a, b ClassID) (ClassID, bool)
	// HasFiniteInstances reports whether the given Structure/Class type's
	// instance set (including, for classes, all descendant classes) is
	// finite — true for every declared Structure/Class in this language,
	// since instances are a fixed, enumerable set fixed at parse time.
	HasFiniteInstances(t Type) bool
}

// IsSubtypeOf implements spec.md §4.1's subtype lattice:
//
//	Interval(a,b) <: Interval(c,d) iff c<=a && b<=d
//	Interval <: Int <: Real
//	Class(x) <: Class(y) iff y is x or a transitive ancestor of x
//
// Reflexive; all other pairs are incomparable.
func IsSubtypeOf(t, u Type, h Hierarchy) bool {
	if t.Equal(u) {
		return true
	}
	switch {
	case t.kind == Interval && u.kind == Interval:
		return u.lo <= t.lo && t.hi <= u.hi
	case t.kind == Interval && u.kind == Int:
		return true
	case t.kind == Interval && u.kind == Real:
		return true
	case t.kind == Int && u.kind == Real:
		return true
	case t.kind == Class && u.kind == Class:
		return h.IsAncestor(u.class, t.class)
	default:
		return false
	}
}

// IsCompatibleForEquality is the symmetric variant of subtyping used only by
// `=`/`!=`: like IsSubtypeOf in either direction, plus two intervals whose
// ranges simply overlap (non-empty intersection), without one containing
// the other.
func IsCompatibleForEquality(t, u Type, h Hierarchy) bool {
	if IsSubtypeOf(t, u, h) || IsSubtypeOf(u, t, h) {
		return true
	}
	if t.kind == Interval && u.kind == Interval {
		return t.lo <= u.hi && u.lo <= t.hi
	}
	return false
}

// CommonType returns the least upper bound of t and u under the subtype
// lattice, or Undefined if none exists.
func CommonType(t, u Type, h Hierarchy) Type {
	if t.Equal(u) {
		return t
	}
	switch {
	case t.kind == Class && u.kind == Class:
		if anc, ok := h.NearestCommonAncestor(t.class, u.class); ok {
			return NewClass(anc)
		}
		return NewUndefined()
	case t.kind == Interval && u.kind == Interval:
		lo := min(t.lo, u.lo)
		hi := max(t.hi, u.hi)
		return NewInterval(lo, hi)
	case (t.kind == Int && u.kind == Interval) || (t.kind == Interval && u.kind == Int):
		return NewInt()
	case t.kind == Int && u.kind == Int:
		return NewInt()
	case t.kind == Real && (u.kind == Int || u.kind == Interval):
		return NewReal()
	case u.kind == Real && (t.kind == Int || t.kind == Interval):
		return NewReal()
	case t.kind == Real && u.kind == Real:
		return NewReal()
	case t.kind == Bool && u.kind == Bool:
		return NewBool()
	default:
		return NewUndefined()
	}
}
