package problem

import "github.com/cwbudde/ccl/internal/types"

// Domain enumerates the finite set of values a bounded type ranges over
// (spec.md §4.7 "enumeration"): {false,true} for Bool, {a,...,b} for
// Interval(a,b), and the declared instances of a Structure/Class (including,
// for a Class, every descendant class's instances). t must satisfy
// t.IsBounded(p); callers are expected to have checked that already (the
// well-formedness checker, §4.5).
func Domain(t types.Type, p *Problem) []Expr {
	switch t.Kind() {
	case types.Bool:
		return []Expr{&BoolValue{Value: false}, &BoolValue{Value: true}}
	case types.Interval:
		lo, hi := t.Bounds()
		out := make([]Expr, 0, hi-lo+1)
		for n := lo; n <= hi; n++ {
			out = append(out, &IntValue{Value: n})
		}
		return out
	case types.Structure:
		var out []Expr
		for _, id := range p.InstancesOfStructure(t.StructureID()) {
			out = append(out, &Instance{ID: id})
		}
		return out
	case types.Class:
		var out []Expr
		for _, id := range p.InstancesOfClass(t.ClassID()) {
			out = append(out, &Instance{ID: id})
		}
		return out
	default:
		return nil
	}
}
