package problem

import "github.com/cwbudde/ccl/internal/types"

// Dense, integer-like handles, one distinct Go type per entity kind. The
// distinct types serve as the "shape bit" spec.md asks for: a VariableID
// can never be confused with a FuncID at compile time, unlike a bare int
// would allow.
type (
	VariableID   int
	FuncID       int
	InstanceID   int
	ConstraintID int
)

type StructureID = types.StructureID
type ClassID = types.ClassID

// ParamOwnerKind tags which binding form a Parameter belongs to, per
// spec.md's "Parameter ... parent (function or method or quantifier)".
type ParamOwnerKind uint8

const (
	ParamOfFunction ParamOwnerKind = iota
	ParamOfStrucMethod
	ParamOfClassMethod
	ParamOfQuantifier
)

// ParamRef identifies one parameter, wherever it is bound. For quantifier
// parameters, QuantifierUID disambiguates between different quantifier
// expressions that both happen to bind a parameter at the same local index
// (e.g. two sibling `forall i | ...` clauses), since those parameters are
// not entities owned by the Problem — they live only inside one Quantifier
// expression node.
type ParamRef struct {
	Owner         ParamOwnerKind
	FuncID        FuncID
	StrucID       StructureID
	ClassID       ClassID
	MethodIndex   int
	QuantifierUID int
	Index         int
}

// OwnerKind tags whether an Attribute/Method belongs to a Structure or Class.
type OwnerKind uint8

const (
	OwnerStructure OwnerKind = iota
	OwnerClass
)

type AttributeID struct {
	Owner   OwnerKind
	StrucID StructureID
	ClassID ClassID
	Index   int
}

type MethodID struct {
	Owner   OwnerKind
	StrucID StructureID
	ClassID ClassID
	Index   int
}
