// Package resolve implements the two-phase name resolver (spec.md §4.4,
// component E): phase 1 resolves type annotations against the type-name
// environment, phase 2 resolves value expressions against the value-name
// environment and rewrites every Unresolved* node into its typed referent.
package resolve

import (
	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// Run performs both phases in order, mutating p's declarations in place and
// replacing every defining/constraint expression with its resolved form.
func Run(p *problem.Problem) *clerr.ResolveError {
	if err := ResolveTypes(p); err != nil {
		return err
	}
	return ResolveValues(p)
}

// ---------- phase 1: types ----------

// ResolveTypes walks every declared type annotation and every class's
// `extends` reference, substituting UnresolvedName placeholders for
// Structure(h)/Class(h) (spec.md §4.4 phase 1).
func ResolveTypes(p *problem.Problem) *clerr.ResolveError {
	te := p.TypeEntries()

	for i := range p.Variables {
		t, err := resolveType(p.Variables[i].Typ, te, p.Variables[i].Pos)
		if err != nil {
			return err
		}
		p.Variables[i].Typ = t
	}
	for i := range p.Functions {
		for j := range p.Functions[i].Params {
			t, err := resolveType(p.Functions[i].Params[j].Typ, te, p.Functions[i].Params[j].Pos)
			if err != nil {
				return err
			}
			p.Functions[i].Params[j].Typ = t
		}
		t, err := resolveType(p.Functions[i].ReturnType, te, p.Functions[i].Pos)
		if err != nil {
			return err
		}
		p.Functions[i].ReturnType = t
	}
	for i := range p.Structures {
		if err := resolveMembers(p.Structures[i].Attributes, p.Structures[i].Methods, te); err != nil {
			return err
		}
	}
	// Classes: resolve extends first (other classes' members may not depend
	// on it, but a missing parent should fail before member resolution).
	for i := range p.Classes {
		if p.Classes[i].ExtendsName == "" {
			continue
		}
		entry, ok := te.Get(p.Classes[i].ExtendsName)
		if !ok || entry.Kind != problem.TypeEntryClass {
			return &clerr.ResolveError{Category: "type", Name: p.Classes[i].ExtendsName, Pos: p.Classes[i].Pos}
		}
		parent := entry.ClassID
		p.Classes[i].Extends = &parent
	}
	// A chain longer than the number of classes must revisit a class: reject
	// the cycle before anything walks the ancestor chain.
	for i := range p.Classes {
		steps := 0
		for cur := p.Classes[i].Extends; cur != nil; cur = p.GetClass(*cur).Extends {
			if steps++; steps > len(p.Classes) {
				return &clerr.ResolveError{Category: "parent class (extends cycle)", Name: p.Classes[i].ExtendsName, Pos: p.Classes[i].Pos}
			}
		}
	}
	for i := range p.Classes {
		if err := resolveMembers(p.Classes[i].Attributes, p.Classes[i].Methods, te); err != nil {
			return err
		}
	}
	// Quantifier-bound parameter types live inside expression trees, which
	// are only walked here for their type annotations (not yet for value
	// resolution) — a quantifier's Params may be declared with a structure
	// or class name.
	walk := func(e problem.Expr) *clerr.ResolveError {
		return resolveQuantifierTypesIn(e, te)
	}
	for i := range p.Variables {
		if p.Variables[i].Expr != nil {
			if err := walk(p.Variables[i].Expr); err != nil {
				return err
			}
		}
	}
	for i := range p.Functions {
		if p.Functions[i].Expr != nil {
			if err := walk(p.Functions[i].Expr); err != nil {
				return err
			}
		}
	}
	for i := range p.Structures {
		for j := range p.Structures[i].Attributes {
			if p.Structures[i].Attributes[j].Expr != nil {
				if err := walk(p.Structures[i].Attributes[j].Expr); err != nil {
					return err
				}
			}
		}
		for j := range p.Structures[i].Methods {
			if p.Structures[i].Methods[j].Expr != nil {
				if err := walk(p.Structures[i].Methods[j].Expr); err != nil {
					return err
				}
			}
		}
	}
	for i := range p.Classes {
		for j := range p.Classes[i].Attributes {
			if p.Classes[i].Attributes[j].Expr != nil {
				if err := walk(p.Classes[i].Attributes[j].Expr); err != nil {
					return err
				}
			}
		}
		for j := range p.Classes[i].Methods {
			if p.Classes[i].Methods[j].Expr != nil {
				if err := walk(p.Classes[i].Methods[j].Expr); err != nil {
					return err
				}
			}
		}
	}
	for i := range p.Constraints {
		if err := walk(p.Constraints[i].Expr); err != nil {
			return err
		}
	}
	if p.Search.IsOptimize && p.Search.Expr != nil {
		if err := walk(p.Search.Expr); err != nil {
			return err
		}
	}
	return nil
}

func resolveMembers(attrs []problem.Attribute, meths []problem.Method, te problem.TypeEntries) *clerr.ResolveError {
	for i := range attrs {
		t, err := resolveType(attrs[i].Typ, te, attrs[i].Pos)
		if err != nil {
			return err
		}
		attrs[i].Typ = t
	}
	for i := range meths {
		for j := range meths[i].Params {
			t, err := resolveType(meths[i].Params[j].Typ, te, meths[i].Params[j].Pos)
			if err != nil {
				return err
			}
			meths[i].Params[j].Typ = t
		}
		t, err := resolveType(meths[i].ReturnType, te, meths[i].Pos)
		if err != nil {
			return err
		}
		meths[i].ReturnType = t
	}
	return nil
}

func resolveType(t types.Type, te problem.TypeEntries, pos clerr.Position) (types.Type, *clerr.ResolveError) {
	if !t.IsUnresolvedName() {
		return t, nil
	}
	entry, ok := te.Get(t.Name())
	if !ok {
		return t, &clerr.ResolveError{Category: "type", Name: t.Name(), Pos: pos}
	}
	if entry.Kind == problem.TypeEntryStructure {
		return types.NewStructure(entry.StrucID), nil
	}
	return types.NewClass(entry.ClassID), nil
}

// resolveQuantifierTypesIn resolves the declared type of every
// quantifier-bound parameter found anywhere inside e. It does not rewrite
// Unresolved* value forms — that is phase 2's job.
func resolveQuantifierTypesIn(e problem.Expr, te problem.TypeEntries) *clerr.ResolveError {
	var err *clerr.ResolveError
	problem.Walk(e, func(child problem.Expr) bool {
		if err != nil {
			return false
		}
		if q, ok := child.(*problem.Quantifier); ok {
			for i := range q.Params {
				t, e2 := resolveType(q.Params[i].Typ, te, q.Params[i].Pos)
				if e2 != nil {
					err = e2
					return false
				}
				q.Params[i].Typ = t
			}
		}
		return true
	})
	return err
}
