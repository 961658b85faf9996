// Package reify implements the model reifier (spec.md §4.9): given a Sat
// search result, project every variable, function/method table and instance
// attribute back into typed source-language values by reading them off the
// solver's model.
package reify

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/smt"
	"github.com/cwbudde/ccl/internal/types"
)

// Value is a reified scalar: exactly one of its fields is meaningful,
// selected by Kind, mirroring the four concrete leaf kinds a Type can
// resolve to at runtime (Bool/Int/Real/Instance — an Interval value is
// reported as Int, since the bound is static, not part of the value).
type Value struct {
	Kind     types.Kind
	Bool     bool
	Int      int
	Numer    int
	Denom    int
	Instance string
}

func valueOf(t types.Type, ev smt.EvalValue) Value {
	switch t.Kind() {
	case types.Bool:
		return Value{Kind: types.Bool, Bool: ev.Bool}
	case types.Real:
		return Value{Kind: types.Real, Numer: ev.Numer, Denom: ev.Denom}
	case types.Structure, types.Class:
		return Value{Kind: t.Kind(), Instance: ev.Instance}
	default: // Int, Interval
		return Value{Kind: types.Int, Int: ev.Numer / ev.Denom}
	}
}

// Row is one (arguments, result) entry of a function or method's reified
// table, enumerated over the Cartesian product of its parameters' bounded
// domains (spec.md §4.9).
type Row struct {
	Args   []Value
	Result Value
}

// InstanceReport is one instance's reified attributes and method tables.
type InstanceReport struct {
	Name       string
	Attributes map[string]Value
	Methods    map[string][]Row
}

// Model is the fully reified search result.
type Model struct {
	Variables map[string]Value
	Functions map[string][]Row
	Instances []InstanceReport
}

// Run reifies m (a Sat model of p encoded through enc) into source-typed
// values.
func Run(p *problem.Problem, enc *smt.Encoder, m *smt.Model) Model {
	out := Model{
		Variables: make(map[string]Value, len(p.Variables)),
		Functions: make(map[string][]Row, len(p.Functions)),
	}

	for _, v := range p.Variables {
		out.Variables[v.Name] = valueOf(v.Typ, m.Eval(enc.VariableTerm(v.ID)))
	}

	for _, f := range p.Functions {
		out.Functions[f.Name] = reifyTable(p, enc, m, f.Params, f.ReturnType, f.Expr,
			func(i int) problem.ParamRef {
				return problem.ParamRef{Owner: problem.ParamOfFunction, FuncID: f.ID, Index: i}
			})
	}

	instances := append([]problem.Instance(nil), p.Instances...)
	sort.Slice(instances, func(i, j int) bool { return natural.Less(instances[i].Name, instances[j].Name) })

	for _, inst := range instances {
		out.Instances = append(out.Instances, reifyInstance(p, enc, m, inst))
	}

	return out
}

func reifyInstance(p *problem.Problem, enc *smt.Encoder, m *smt.Model, inst problem.Instance) InstanceReport {
	report := InstanceReport{
		Name:       inst.Name,
		Attributes: make(map[string]Value),
		Methods:    make(map[string][]Row),
	}
	self := enc.InstanceTerm(inst.ID)

	var attrs []problem.Attribute
	var methods []problem.Method
	if inst.Structure.IsClass {
		id := inst.Structure.Class
		attrs = append(attrs, p.GetClass(id).Attributes...)
		methods = append(methods, p.GetClass(id).Methods...)
		for _, anc := range p.SuperClasses(id) {
			attrs = append(attrs, p.GetClass(anc).Attributes...)
			methods = append(methods, p.GetClass(anc).Methods...)
		}
	} else {
		s := p.GetStructure(inst.Structure.Struc)
		attrs = append(attrs, s.Attributes...)
		methods = append(methods, s.Methods...)
	}

	for _, a := range attrs {
		if _, seen := report.Attributes[a.Name]; seen {
			continue // nearer (self) declaration already recorded
		}
		term := enc.EncodeExprWithSelf(a.Expr, self)
		report.Attributes[a.Name] = valueOf(a.Typ, m.Eval(term))
	}

	for _, mth := range methods {
		if _, seen := report.Methods[mth.Name]; seen {
			continue
		}
		id := mth.ID
		report.Methods[mth.Name] = reifyTable(p, enc, m, mth.Params, mth.ReturnType, mth.Expr,
			func(i int) problem.ParamRef {
				if id.Owner == problem.OwnerStructure {
					return problem.ParamRef{Owner: problem.ParamOfStrucMethod, StrucID: id.StrucID, MethodIndex: id.Index, Index: i}
				}
				return problem.ParamRef{Owner: problem.ParamOfClassMethod, ClassID: id.ClassID, MethodIndex: id.Index, Index: i}
			}, self)
	}

	return report
}

// paramLike is the subset of FunctionParam/MethodParam reifyTable needs.
type paramLike struct {
	Name string
	Typ  types.Type
}

func reifyTable(p *problem.Problem, enc *smt.Encoder, m *smt.Model, params interface{}, ret types.Type, body problem.Expr,
	refFor func(i int) problem.ParamRef, self ...smt.Term) []Row {

	ps := toParamLike(params)
	if len(ps) == 0 {
		var selfTerm smt.Term
		if len(self) > 0 {
			selfTerm = self[0]
		}
		term := enc.EncodeExprWithSelf(body, selfTerm)
		return []Row{{Result: valueOf(ret, m.Eval(term))}}
	}

	domains := make([][]problem.Expr, len(ps))
	for i, pr := range ps {
		domains[i] = problem.Domain(pr.Typ, p)
	}

	var rows []Row
	var walk func(i int, chosen []problem.Expr)
	walk = func(i int, chosen []problem.Expr) {
		if i == len(ps) {
			inst := body
			for j, val := range chosen {
				inst = problem.Substitute(inst, refFor(j), val)
			}
			var selfTerm smt.Term
			if len(self) > 0 {
				selfTerm = self[0]
			}
			term := enc.EncodeExprWithSelf(inst, selfTerm)
			args := make([]Value, len(chosen))
			for j, val := range chosen {
				args[j] = literalValue(p, ps[j].Typ, val)
			}
			rows = append(rows, Row{Args: args, Result: valueOf(ret, m.Eval(term))})
			return
		}
		for _, val := range domains[i] {
			walk(i+1, append(chosen, val))
		}
	}
	walk(0, nil)
	return rows
}

// literalValue converts a domain literal Expr (produced by problem.Domain)
// directly to a Value, without needing the solver: these are ground
// BoolValue/IntValue/Instance nodes, not expressions requiring evaluation.
func literalValue(p *problem.Problem, t types.Type, e problem.Expr) Value {
	switch n := e.(type) {
	case *problem.BoolValue:
		return Value{Kind: types.Bool, Bool: n.Value}
	case *problem.IntValue:
		return Value{Kind: types.Int, Int: n.Value}
	case *problem.Instance:
		return Value{Kind: t.Kind(), Instance: p.GetInstance(n.ID).Name}
	default:
		return Value{}
	}
}

func toParamLike(params interface{}) []paramLike {
	switch ps := params.(type) {
	case []problem.FunctionParam:
		out := make([]paramLike, len(ps))
		for i, p := range ps {
			out[i] = paramLike{Name: p.Name, Typ: p.Typ}
		}
		return out
	case []problem.MethodParam:
		out := make([]paramLike, len(ps))
		for i, p := range ps {
			out[i] = paramLike{Name: p.Name, Typ: p.Typ}
		}
		return out
	default:
		return nil
	}
}
