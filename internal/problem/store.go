// Package problem implements the Problem store (spec.md component B), the
// name environments (component C) and the closed Expr AST the rest of the
// pipeline walks.
package problem

import (
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/types"
)

// Problem exclusively owns every declared entity; all cross-references
// inside expressions are by handle. It preserves declaration order for
// deterministic traversal (spec.md §4.2).
type Problem struct {
	Variables   []Variable
	Functions   []Function
	Structures  []Structure
	Classes     []Class
	Instances   []Instance
	Constraints []Constraint
	Search      Search
}

func New() *Problem {
	return &Problem{}
}

// ---------- add ----------

func (p *Problem) AddVariable(v Variable) VariableID {
	v.ID = VariableID(len(p.Variables))
	p.Variables = append(p.Variables, v)
	return v.ID
}

func (p *Problem) AddFunction(f Function) FuncID {
	f.ID = FuncID(len(p.Functions))
	p.Functions = append(p.Functions, f)
	return f.ID
}

func (p *Problem) AddStructure(s Structure) StructureID {
	s.ID = StructureID(len(p.Structures))
	for i := range s.Attributes {
		s.Attributes[i].ID = AttributeID{Owner: OwnerStructure, StrucID: s.ID, Index: i}
	}
	for i := range s.Methods {
		s.Methods[i].ID = MethodID{Owner: OwnerStructure, StrucID: s.ID, Index: i}
	}
	p.Structures = append(p.Structures, s)
	return s.ID
}

func (p *Problem) AddClass(c Class) ClassID {
	c.ID = ClassID(len(p.Classes))
	for i := range c.Attributes {
		c.Attributes[i].ID = AttributeID{Owner: OwnerClass, ClassID: c.ID, Index: i}
	}
	for i := range c.Methods {
		c.Methods[i].ID = MethodID{Owner: OwnerClass, ClassID: c.ID, Index: i}
	}
	p.Classes = append(p.Classes, c)
	return c.ID
}

func (p *Problem) AddInstance(i Instance) InstanceID {
	i.ID = InstanceID(len(p.Instances))
	p.Instances = append(p.Instances, i)
	return i.ID
}

func (p *Problem) AddConstraint(c Constraint) ConstraintID {
	c.ID = ConstraintID(len(p.Constraints))
	p.Constraints = append(p.Constraints, c)
	return c.ID
}

// ---------- get ----------
//
// get on an unknown handle is a program bug (spec.md §4.2) and aborts —
// these are never called with handles the resolver did not itself mint, so
// a panic here can only mean an internal inconsistency.

func (p *Problem) GetVariable(id VariableID) *Variable { return &p.Variables[id] }
func (p *Problem) GetFunction(id FuncID) *Function      { return &p.Functions[id] }
func (p *Problem) GetStructure(id StructureID) *Structure { return &p.Structures[id] }
func (p *Problem) GetClass(id ClassID) *Class            { return &p.Classes[id] }
func (p *Problem) GetInstance(id InstanceID) *Instance   { return &p.Instances[id] }
func (p *Problem) GetConstraint(id ConstraintID) *Constraint { return &p.Constraints[id] }

func (p *Problem) GetAttribute(id AttributeID) *Attribute {
	if id.Owner == OwnerStructure {
		return &p.Structures[id.StrucID].Attributes[id.Index]
	}
	return &p.Classes[id.ClassID].Attributes[id.Index]
}

func (p *Problem) GetMethod(id MethodID) *Method {
	if id.Owner == OwnerStructure {
		return &p.Structures[id.StrucID].Methods[id.Index]
	}
	return &p.Classes[id.ClassID].Methods[id.Index]
}

// ---------- find (first declaration with that name) ----------

func (p *Problem) FindVariable(name string) (VariableID, bool) {
	for _, v := range p.Variables {
		if v.Name == name {
			return v.ID, true
		}
	}
	return 0, false
}

func (p *Problem) FindFunction(name string) (FuncID, bool) {
	for _, f := range p.Functions {
		if f.Name == name {
			return f.ID, true
		}
	}
	return 0, false
}

func (p *Problem) FindStructure(name string) (StructureID, bool) {
	for _, s := range p.Structures {
		if s.Name == name {
			return s.ID, true
		}
	}
	return 0, false
}

func (p *Problem) FindClass(name string) (ClassID, bool) {
	for _, c := range p.Classes {
		if c.Name == name {
			return c.ID, true
		}
	}
	return 0, false
}

func (p *Problem) FindInstance(name string) (InstanceID, bool) {
	for _, i := range p.Instances {
		if i.Name == name {
			return i.ID, true
		}
	}
	return 0, false
}

func (s *Structure) FindAttribute(name string) (AttributeID, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a.ID, true
		}
	}
	return AttributeID{}, false
}

func (s *Structure) FindMethod(name string) (MethodID, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m.ID, true
		}
	}
	return MethodID{}, false
}

func (c *Class) FindAttributeLocal(name string) (AttributeID, bool) {
	for _, a := range c.Attributes {
		if a.Name == name {
			return a.ID, true
		}
	}
	return AttributeID{}, false
}

func (c *Class) FindMethodLocal(name string) (MethodID, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m.ID, true
		}
	}
	return MethodID{}, false
}

// SuperClasses returns c's ancestor chain, nearest parent first.
func (p *Problem) SuperClasses(id ClassID) []ClassID {
	var out []ClassID
	cur := p.GetClass(id)
	for cur.Extends != nil {
		parent := *cur.Extends
		out = append(out, parent)
		cur = p.GetClass(parent)
	}
	return out
}

// FindClassAttribute searches the class itself first, then its ancestors,
// nearest first — self shadows inherited members (spec.md §4.4's
// "first match wins", grounded on original_source's Class::find_all_attribute).
func (p *Problem) FindClassAttribute(id ClassID, name string) (AttributeID, bool) {
	if a, ok := p.GetClass(id).FindAttributeLocal(name); ok {
		return a, true
	}
	for _, anc := range p.SuperClasses(id) {
		if a, ok := p.GetClass(anc).FindAttributeLocal(name); ok {
			return a, true
		}
	}
	return AttributeID{}, false
}

func (p *Problem) FindClassMethod(id ClassID, name string) (MethodID, bool) {
	if m, ok := p.GetClass(id).FindMethodLocal(name); ok {
		return m, true
	}
	for _, anc := range p.SuperClasses(id) {
		if m, ok := p.GetClass(anc).FindMethodLocal(name); ok {
			return m, true
		}
	}
	return MethodID{}, false
}

// ---------- types.Hierarchy ----------

var _ types.Hierarchy = (*Problem)(nil)

func (p *Problem) IsAncestor(ancestor, of ClassID) bool {
	if ancestor == of {
		return true
	}
	for _, anc := range p.SuperClasses(of) {
		if anc == ancestor {
			return true
		}
	}
	return false
}

// NearestCommonAncestor walks of a's chain (self + ancestors, nearest
// first) and returns the first one that also appears in b's chain —
// grounded on original_source/src/problem/class.rs's Class::common_class.
func (p *Problem) NearestCommonAncestor(a, b ClassID) (ClassID, bool) {
	chainA := append([]ClassID{a}, p.SuperClasses(a)...)
	chainB := map[ClassID]bool{b: true}
	for _, anc := range p.SuperClasses(b) {
		chainB[anc] = true
	}
	for _, c := range chainA {
		if chainB[c] {
			return c, true
		}
	}
	return 0, false
}

func (p *Problem) HasFiniteInstances(_ types.Type) bool {
	// Every Structure/Class instance set in this language is the fixed,
	// finite set of `inst` declarations enumerated in §4.7 — there is no
	// way to declare an unbounded instance domain.
	return true
}

// InstancesOfStructure and InstancesOfClass return every declared instance
// whose type is exactly id, or (for a class) a descendant of id — spec.md
// §4.7's enumeration rule.
func (p *Problem) InstancesOfStructure(id StructureID) []InstanceID {
	var out []InstanceID
	for _, inst := range p.Instances {
		if !inst.Structure.IsClass && inst.Structure.Struc == id {
			out = append(out, inst.ID)
		}
	}
	return out
}

func (p *Problem) InstancesOfClass(id ClassID) []InstanceID {
	var out []InstanceID
	for _, inst := range p.Instances {
		if inst.Structure.IsClass && p.IsAncestor(id, inst.Structure.Class) {
			out = append(out, inst.ID)
		}
	}
	return out
}

// ---------- Position (for Named entities used by the duplicate checker) ----------

type Naming struct {
	Name string
	Pos  clerr.Position
}
