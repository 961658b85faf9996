package smt

// value is the tagged runtime value the backend's evaluator produces for
// any Term given a candidate assignment.
type value struct {
	sort  Sort
	b     bool
	numer int
	denom int // Int values always carry denom 1
	inst  string
}

func boolVal(b bool) value  { return value{sort: SortBool, b: b} }
func intVal(n int) value    { return value{sort: SortInt, numer: n, denom: 1} }
func realVal(n, d int) value { return value{sort: SortReal, numer: n, denom: d} }
func instVal(name string) value { return value{sort: SortUninterpreted, inst: name} }

// maxAssignments bounds the brute-force search's total work so a model with
// many free constants fails closed (Unknown) rather than hanging — the
// honest cost of a from-scratch backend with no real constraint-propagation
// engine behind it (see DESIGN.md).
const maxAssignments = 2_000_000

// Model is a satisfying assignment returned by a successful Check.
type Model struct {
	env map[string]value
}

func (m *Model) BoolValue(t Term) bool {
	v := m.env[t.name]
	return v.b
}

func (m *Model) IntValue(t Term) int {
	v := m.env[t.name]
	return v.numer / v.denom
}

func (m *Model) RealValue(t Term) (numer, denom int) {
	v := m.env[t.name]
	return v.numer, v.denom
}

func (m *Model) InstanceValue(t Term) string {
	return m.env[t.name].inst
}

// EvalValue is the reified form of evaluating an arbitrary (not necessarily
// named-constant) term against a model — used by the model reifier (package
// reify) to read off function/method/attribute bodies after substituting
// their parameters or self with argument/receiver terms.
type EvalValue struct {
	Sort     Sort
	Bool     bool
	Numer    int
	Denom    int // Int values carry denom 1
	Instance string
}

// Eval evaluates t (any term built from this Solver, not only a declared
// constant) against m.
func (m *Model) Eval(t Term) EvalValue {
	v := eval(&t, m.env)
	return EvalValue{Sort: v.sort, Bool: v.b, Numer: v.numer, Denom: v.denom, Instance: v.inst}
}

// Check implements spec.md §4.8's three-way verdict via exhaustive
// backtracking search over each declared constant's finite domain
// (numeric constants use the solver's configured search window; see
// DESIGN.md for why this is a documented limitation rather than a complete
// decision procedure).
func (s *Solver) Check() Result {
	env := make(map[string]value, len(s.consts))
	budget := maxAssignments
	ok := s.search(0, env, &budget)
	if ok {
		m := make(map[string]value, len(env))
		for k, v := range env {
			m[k] = v
		}
		s.lastModel = &Model{env: m}
		return Sat
	}
	if budget <= 0 {
		return Unknown
	}
	return Unsat
}

func (s *Solver) Model() *Model { return s.lastModel }

func (s *Solver) search(i int, env map[string]value, budget *int) bool {
	if i == len(s.consts) {
		*budget--
		if *budget < 0 {
			return false
		}
		return s.satisfies(env)
	}
	c := s.consts[i]
	for _, v := range s.domainOf(c) {
		env[c.name] = v
		if s.search(i+1, env, budget) {
			return true
		}
		if *budget < 0 {
			return false
		}
	}
	delete(env, c.name)
	return false
}

func (s *Solver) domainOf(c *Term) []value {
	switch c.sort {
	case SortBool:
		return []value{boolVal(false), boolVal(true)}
	case SortInt:
		out := make([]value, 0, 2*s.searchBound+1)
		for n := -s.searchBound; n <= s.searchBound; n++ {
			out = append(out, intVal(n))
		}
		return out
	case SortReal:
		out := make([]value, 0, (2*s.searchBound*s.realDenom + 1))
		for n := -s.searchBound * s.realDenom; n <= s.searchBound*s.realDenom; n++ {
			out = append(out, realVal(n, s.realDenom))
		}
		return out
	default: // SortUninterpreted
		out := make([]value, 0, len(c.domain))
		for _, name := range c.domain {
			out = append(out, instVal(name))
		}
		return out
	}
}

func (s *Solver) satisfies(env map[string]value) bool {
	for _, a := range s.asserts {
		v := eval(a, env)
		if !v.b {
			return false
		}
	}
	return true
}

func eval(t *Term, env map[string]value) value {
	switch t.op {
	case opConst:
		return env[t.name]
	case opBoolLit:
		return boolVal(t.boolLit)
	case opIntLit:
		return intVal(t.numer)
	case opRealLit:
		return realVal(t.numer, t.denom)
	case opUninterpretedLit:
		return instVal(t.name)
	case opNot:
		return boolVal(!eval(t.children[0], env).b)
	case opAnd:
		return boolVal(eval(t.children[0], env).b && eval(t.children[1], env).b)
	case opOr:
		return boolVal(eval(t.children[0], env).b || eval(t.children[1], env).b)
	case opImplies:
		a := eval(t.children[0], env).b
		b := eval(t.children[1], env).b
		return boolVal(!a || b)
	case opEq:
		return boolVal(valuesEqual(eval(t.children[0], env), eval(t.children[1], env)))
	case opNe:
		return boolVal(!valuesEqual(eval(t.children[0], env), eval(t.children[1], env)))
	case opLt:
		return boolVal(cmp(eval(t.children[0], env), eval(t.children[1], env)) < 0)
	case opLe:
		return boolVal(cmp(eval(t.children[0], env), eval(t.children[1], env)) <= 0)
	case opGe:
		return boolVal(cmp(eval(t.children[0], env), eval(t.children[1], env)) >= 0)
	case opGt:
		return boolVal(cmp(eval(t.children[0], env), eval(t.children[1], env)) > 0)
	case opAdd:
		return arith(eval(t.children[0], env), eval(t.children[1], env), t.sort, func(a, b int) int { return a + b })
	case opSub:
		return arith(eval(t.children[0], env), eval(t.children[1], env), t.sort, func(a, b int) int { return a - b })
	case opMul:
		l, r := eval(t.children[0], env), eval(t.children[1], env)
		if t.sort == SortInt {
			return intVal(l.numer/l.denom * (r.numer / r.denom))
		}
		return realVal(l.numer*r.numer, l.denom*r.denom)
	case opDiv:
		l, r := eval(t.children[0], env), eval(t.children[1], env)
		return realVal(l.numer*r.denom, l.denom*r.numer)
	case opNeg:
		v := eval(t.children[0], env)
		if v.sort == SortInt {
			return intVal(-v.numer)
		}
		return realVal(-v.numer, v.denom)
	case opToReal:
		v := eval(t.children[0], env)
		return realVal(v.numer, v.denom)
	case opIte:
		if eval(t.children[0], env).b {
			return eval(t.children[1], env)
		}
		return eval(t.children[2], env)
	default:
		return value{}
	}
}

func arith(l, r value, sort Sort, f func(a, b int) int) value {
	if sort == SortInt {
		return intVal(f(l.numer/l.denom, r.numer/r.denom))
	}
	// Cross-multiply to a common denominator before combining.
	ld, rd := l.denom, r.denom
	return realVal(f(l.numer*rd, r.numer*ld), ld*rd)
}

func valuesEqual(a, b value) bool {
	if a.sort == SortUninterpreted {
		return a.inst == b.inst
	}
	if a.sort == SortBool {
		return a.b == b.b
	}
	return cmp(a, b) == 0
}

func cmp(a, b value) int {
	l := a.numer * b.denom
	r := b.numer * a.denom
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}
