package resolve

import (
	"fmt"

	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// ResolveValues is resolver phase 2 (spec.md §4.4 phase 2): it rewrites
// every Unresolved* node in every defining/constraint expression into its
// typed referent, against an environment extended per binding form.
func ResolveValues(p *problem.Problem) *clerr.ResolveError {
	global := p.Entries()

	for i := range p.Variables {
		if p.Variables[i].Expr == nil {
			continue
		}
		e, err := resolveExpr(p.Variables[i].Expr, global, p)
		if err != nil {
			return err
		}
		p.Variables[i].Expr = e
	}

	for i := range p.Functions {
		f := &p.Functions[i]
		if f.Expr == nil {
			continue
		}
		scope := global.AddAll(funcParamEntries(f))
		e, err := resolveExpr(f.Expr, scope, p)
		if err != nil {
			return err
		}
		f.Expr = e
	}

	for i := range p.Structures {
		s := &p.Structures[i]
		selfScope := global.Add(problem.Entry{Name: "self", Kind: problem.EntryStrucSelf, StrucID: s.ID})
		for j := range s.Attributes {
			a := &s.Attributes[j]
			if a.Expr == nil {
				continue
			}
			e, err := resolveExpr(a.Expr, selfScope, p)
			if err != nil {
				return err
			}
			a.Expr = e
		}
		for j := range s.Methods {
			m := &s.Methods[j]
			if m.Expr == nil {
				continue
			}
			scope := selfScope.AddAll(methodParamEntries(s.ID, problem.OwnerStructure, j, m))
			e, err := resolveExpr(m.Expr, scope, p)
			if err != nil {
				return err
			}
			m.Expr = e
		}
	}

	for i := range p.Classes {
		c := &p.Classes[i]
		selfScope := global.Add(problem.Entry{Name: "self", Kind: problem.EntryClassSelf, ClassID: c.ID})
		for j := range c.Attributes {
			a := &c.Attributes[j]
			if a.Expr == nil {
				continue
			}
			e, err := resolveExpr(a.Expr, selfScope, p)
			if err != nil {
				return err
			}
			a.Expr = e
		}
		for j := range c.Methods {
			m := &c.Methods[j]
			if m.Expr == nil {
				continue
			}
			scope := selfScope.AddAll(methodParamEntries(c.ID, problem.OwnerClass, j, m))
			e, err := resolveExpr(m.Expr, scope, p)
			if err != nil {
				return err
			}
			m.Expr = e
		}
	}

	for i := range p.Constraints {
		e, err := resolveExpr(p.Constraints[i].Expr, global, p)
		if err != nil {
			return err
		}
		p.Constraints[i].Expr = e
	}

	if p.Search.IsOptimize && p.Search.Expr != nil {
		e, err := resolveExpr(p.Search.Expr, global, p)
		if err != nil {
			return err
		}
		p.Search.Expr = e
	}

	return nil
}

func funcParamEntries(f *problem.Function) []problem.Entry {
	var v []problem.Entry
	for i, param := range f.Params {
		v = append(v, problem.Entry{
			Name: param.Name,
			Kind: problem.EntryParameter,
			Param: problem.ParamRef{
				Owner: problem.ParamOfFunction, FuncID: f.ID, Index: i,
			},
		})
	}
	return v
}

func methodParamEntries(id any, owner problem.OwnerKind, _ int, m *problem.Method) []problem.Entry {
	var v []problem.Entry
	paramOwner := problem.ParamOfStrucMethod
	if owner == problem.OwnerClass {
		paramOwner = problem.ParamOfClassMethod
	}
	for i, param := range m.Params {
		ref := problem.ParamRef{Owner: paramOwner, MethodIndex: m.ID.Index, Index: i}
		if owner == problem.OwnerStructure {
			ref.StrucID = id.(problem.StructureID)
		} else {
			ref.ClassID = id.(problem.ClassID)
		}
		v = append(v, problem.Entry{Name: param.Name, Kind: problem.EntryParameter, Param: ref})
	}
	return v
}

// resolveExpr rebuilds e with every Unresolved* node replaced by its typed
// referent, extending entries for quantifier bodies as it descends.
func resolveExpr(e problem.Expr, entries problem.Entries, p *problem.Problem) (problem.Expr, *clerr.ResolveError) {
	switch n := e.(type) {
	case *problem.BoolValue, *problem.IntValue, *problem.RealValue:
		return e, nil

	case *problem.Unresolved:
		entry, ok := entries.Get(n.Name)
		if !ok {
			return nil, &clerr.ResolveError{Category: "variable", Name: n.Name, Pos: n.Pos}
		}
		switch entry.Kind {
		case problem.EntryVariable:
			return &problem.Variable{ID: entry.VariableID, Pos: n.Pos}, nil
		case problem.EntryParameter:
			return &problem.Parameter{Ref: entry.Param, Name: n.Name, Typ: paramType(entry.Param, p), Pos: n.Pos}, nil
		case problem.EntryInstance:
			return &problem.Instance{ID: entry.InstanceID, Pos: n.Pos}, nil
		case problem.EntryStrucSelf:
			return &problem.StrucSelf{ID: entry.StrucID, Pos: n.Pos}, nil
		case problem.EntryClassSelf:
			return &problem.ClassSelf{ID: entry.ClassID, Pos: n.Pos}, nil
		case problem.EntryQuantParam:
			return &problem.Parameter{Ref: entry.Param, Name: n.Name, Typ: entry.QuantType, Pos: n.Pos}, nil
		case problem.EntryFunction:
			// A bare name resolving to a function with no call syntax is not
			// a valid value reference in this language.
			return nil, &clerr.ResolveError{Category: "variable", Name: n.Name, Pos: n.Pos}
		}
		return nil, &clerr.ResolveError{Category: "variable", Name: n.Name, Pos: n.Pos}

	case *problem.UnresolvedFunCall:
		id, ok := p.FindFunction(n.Name)
		if !ok {
			return nil, &clerr.ResolveError{Category: "function", Name: n.Name, Pos: n.Pos}
		}
		args, err := resolveAll(n.Args, entries, p)
		if err != nil {
			return nil, err
		}
		return &problem.FunctionCall{ID: id, Args: args, Pos: n.Pos}, nil

	case *problem.UnresolvedAttribute:
		recv, err := resolveExpr(n.Receiver, entries, p)
		if err != nil {
			return nil, err
		}
		t := problem.Typ(recv, p)
		switch t.Kind() {
		case types.Structure:
			s := p.GetStructure(t.StructureID())
			attr, ok := s.FindAttribute(n.Name)
			if !ok {
				return nil, &clerr.ResolveError{Category: fmt.Sprintf("attribute for type %s", s.Name), Name: n.Name, Pos: n.Pos}
			}
			return &problem.StrucAttribute{Receiver: recv, Attr: attr, Pos: n.Pos}, nil
		case types.Class:
			c := p.GetClass(t.ClassID())
			attr, ok := p.FindClassAttribute(t.ClassID(), n.Name)
			if !ok {
				return nil, &clerr.ResolveError{Category: fmt.Sprintf("attribute for type %s", c.Name), Name: n.Name, Pos: n.Pos}
			}
			return &problem.ClassAttribute{Receiver: recv, Attr: attr, Pos: n.Pos}, nil
		default:
			return nil, &clerr.ResolveError{Category: "attribute", Name: n.Name, Pos: n.Pos}
		}

	case *problem.UnresolvedMethCall:
		recv, err := resolveExpr(n.Receiver, entries, p)
		if err != nil {
			return nil, err
		}
		args, err := resolveAll(n.Args, entries, p)
		if err != nil {
			return nil, err
		}
		t := problem.Typ(recv, p)
		switch t.Kind() {
		case types.Structure:
			s := p.GetStructure(t.StructureID())
			m, ok := s.FindMethod(n.Name)
			if !ok {
				return nil, &clerr.ResolveError{Category: fmt.Sprintf("method for type %s", s.Name), Name: n.Name, Pos: n.Pos}
			}
			return &problem.StrucMetCall{Receiver: recv, Method: m, Args: args, Pos: n.Pos}, nil
		case types.Class:
			c := p.GetClass(t.ClassID())
			m, ok := p.FindClassMethod(t.ClassID(), n.Name)
			if !ok {
				return nil, &clerr.ResolveError{Category: fmt.Sprintf("method for type %s", c.Name), Name: n.Name, Pos: n.Pos}
			}
			return &problem.ClassMetCall{Receiver: recv, Method: m, Args: args, Pos: n.Pos}, nil
		default:
			return nil, &clerr.ResolveError{Category: "method", Name: n.Name, Pos: n.Pos}
		}

	case *problem.UnresolvedAs:
		inner, err := resolveExpr(n.E, entries, p)
		if err != nil {
			return nil, err
		}
		switch {
		case n.ClassName != "":
			id, ok := p.FindClass(n.ClassName)
			if !ok {
				return nil, &clerr.ResolveError{Category: "type", Name: n.ClassName, Pos: n.Pos}
			}
			return &problem.AsClass{E: inner, Target: id, Pos: n.Pos}, nil
		case n.IsInterval:
			return &problem.AsInterval{E: inner, Lo: n.Lo, Hi: n.Hi, Pos: n.Pos}, nil
		case n.IsInt:
			return &problem.AsInt{E: inner, Pos: n.Pos}, nil
		default:
			return &problem.AsReal{E: inner, Pos: n.Pos}, nil
		}

	case *problem.Unary:
		inner, err := resolveExpr(n.E, entries, p)
		if err != nil {
			return nil, err
		}
		return &problem.Unary{Op: n.Op, E: inner, Pos: n.Pos}, nil

	case *problem.Binary:
		l, err := resolveExpr(n.Left, entries, p)
		if err != nil {
			return nil, err
		}
		r, err := resolveExpr(n.Right, entries, p)
		if err != nil {
			return nil, err
		}
		return &problem.Binary{Left: l, Op: n.Op, Right: r, Pos: n.Pos}, nil

	case *problem.Nary:
		elems, err := resolveAll(n.Elems, entries, p)
		if err != nil {
			return nil, err
		}
		return &problem.Nary{Op: n.Op, Elems: elems, Pos: n.Pos}, nil

	case *problem.Quantifier:
		scope := entries
		for i, param := range n.Params {
			scope = scope.Add(problem.Entry{
				Name: param.Name,
				Kind: problem.EntryQuantParam,
				Param: problem.ParamRef{
					Owner: problem.ParamOfQuantifier, QuantifierUID: n.UID, Index: i,
				},
				QuantType: param.Typ,
			})
		}
		body, err := resolveExpr(n.Body, scope, p)
		if err != nil {
			return nil, err
		}
		return &problem.Quantifier{Op: n.Op, UID: n.UID, Params: n.Params, Body: body, Pos: n.Pos}, nil

	case *problem.IfThenElse:
		conds, err := resolveAll(n.Conds, entries, p)
		if err != nil {
			return nil, err
		}
		thens, err := resolveAll(n.Thens, entries, p)
		if err != nil {
			return nil, err
		}
		els, err := resolveExpr(n.Else, entries, p)
		if err != nil {
			return nil, err
		}
		return &problem.IfThenElse{Conds: conds, Thens: thens, Else: els, Pos: n.Pos}, nil

	default:
		// Already-resolved node (re-entrant call, e.g. from a later pass);
		// pass through unchanged.
		return e, nil
	}
}

func resolveAll(es []problem.Expr, entries problem.Entries, p *problem.Problem) ([]problem.Expr, *clerr.ResolveError) {
	if es == nil {
		return nil, nil
	}
	out := make([]problem.Expr, len(es))
	for i, e := range es {
		r, err := resolveExpr(e, entries, p)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func paramType(ref problem.ParamRef, p *problem.Problem) types.Type {
	switch ref.Owner {
	case problem.ParamOfFunction:
		return p.GetFunction(ref.FuncID).Params[ref.Index].Typ
	case problem.ParamOfStrucMethod:
		return p.GetStructure(ref.StrucID).Methods[ref.MethodIndex].Params[ref.Index].Typ
	case problem.ParamOfClassMethod:
		return p.GetClass(ref.ClassID).Methods[ref.MethodIndex].Params[ref.Index].Typ
	default:
		return types.NewUndefined()
	}
}
