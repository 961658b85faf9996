package problem

import "github.com/cwbudde/ccl/internal/clerr"

// CheckDuplicate reports the first name that appears more than once among
// namings, grounded on original_source/src/problem/mod.rs's
// check_duplicate: a simple pairwise scan (scopes here are small — dozens
// of names at most — so quadratic is fine and keeps first-collision
// ordering obvious).
func CheckDuplicate(namings []Naming) *clerr.DuplicateError {
	for i, a := range namings {
		for _, b := range namings[i+1:] {
			if a.Name == b.Name {
				return &clerr.DuplicateError{Name: a.Name, First: a.Pos, Second: b.Pos}
			}
		}
	}
	return nil
}

// TopLevelNamings collects the top-level scope: variables, functions,
// structures, classes and instances share one bag of names (spec.md §4.3).
func (p *Problem) TopLevelNamings() []Naming {
	var v []Naming
	for _, x := range p.Variables {
		v = append(v, Naming{Name: x.Name, Pos: x.Pos})
	}
	for _, x := range p.Functions {
		v = append(v, Naming{Name: x.Name, Pos: x.Pos})
	}
	for _, x := range p.Structures {
		v = append(v, Naming{Name: x.Name, Pos: x.Pos})
	}
	for _, x := range p.Classes {
		v = append(v, Naming{Name: x.Name, Pos: x.Pos})
	}
	for _, x := range p.Instances {
		v = append(v, Naming{Name: x.Name, Pos: x.Pos})
	}
	return v
}

// memberNamings collects one structure/class's own attribute+method names
// (its local member scope).
func memberNamings(attrs []Attribute, meths []Method) []Naming {
	var v []Naming
	for _, a := range attrs {
		v = append(v, Naming{Name: a.Name, Pos: a.Pos})
	}
	for _, m := range meths {
		v = append(v, Naming{Name: m.Name, Pos: m.Pos})
	}
	return v
}

// funcParamNamings and methodParamNamings collect one function's or
// method's own parameter names.
func funcParamNamings(params []FunctionParam) []Naming {
	var v []Naming
	for _, p := range params {
		v = append(v, Naming{Name: p.Name, Pos: p.Pos})
	}
	return v
}

func methodParamNamings(params []MethodParam) []Naming {
	var v []Naming
	for _, p := range params {
		v = append(v, Naming{Name: p.Name, Pos: p.Pos})
	}
	return v
}

// CheckDuplicates runs every duplicate scope in the Problem: the top-level
// bag, each structure/class's member bag, and each function/method's
// parameter bag.
func (p *Problem) CheckDuplicates() *clerr.DuplicateError {
	if err := CheckDuplicate(p.TopLevelNamings()); err != nil {
		return err
	}
	for _, f := range p.Functions {
		if err := CheckDuplicate(funcParamNamings(f.Params)); err != nil {
			return err
		}
	}
	for _, s := range p.Structures {
		if err := CheckDuplicate(memberNamings(s.Attributes, s.Methods)); err != nil {
			return err
		}
		for _, m := range s.Methods {
			if err := CheckDuplicate(methodParamNamings(m.Params)); err != nil {
				return err
			}
		}
	}
	for _, c := range p.Classes {
		if err := CheckDuplicate(memberNamings(c.Attributes, c.Methods)); err != nil {
			return err
		}
		for _, m := range c.Methods {
			if err := CheckDuplicate(methodParamNamings(m.Params)); err != nil {
				return err
			}
		}
	}
	return nil
}
