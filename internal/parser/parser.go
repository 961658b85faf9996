// Package parser implements a recursive-descent parser for the source
// language's informal grammar (spec.md §6), grounded on the teacher's
// Parser shape (New(lexer), ParseProgram(), precedence-climbing expression
// parsing; ParseProgram stops at and returns the first error) but building a problem.Problem directly instead of a separate
// AST — the parser IS the Problem store's producer, emitting the
// Unresolved* forms the resolver (internal/resolve) later rewrites.
package parser

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/ccl/internal/clerr"
	"github.com/cwbudde/ccl/internal/lexer"
	"github.com/cwbudde/ccl/internal/problem"
	"github.com/cwbudde/ccl/internal/types"
)

// Parser turns a token stream into a Problem. It stops at the first error
// (spec.md §7's fail-fast discipline extends to parsing).
type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
	p   *problem.Problem

	quantUID int
}

// New returns a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, p: problem.New()}
	p.advance()
	return p
}

// Parse parses a complete program and returns the resulting Problem, or the
// first parse error encountered.
func Parse(source string) (*problem.Problem, *clerr.ParseError) {
	p := New(lexer.New(source))
	return p.ParseProgram()
}

func (p *Parser) advance() { p.cur = p.l.NextToken() }

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur.Type == tt }

func pos(t lexer.Token) clerr.Position {
	return clerr.Position{Line: t.Pos.Line, Column: t.Pos.Column}
}

func (p *Parser) errf(format string, args ...interface{}) *clerr.ParseError {
	return &clerr.ParseError{Message: fmt.Sprintf(format, args...), Pos: pos(p.cur)}
}

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, *clerr.ParseError) {
	if !p.at(tt) {
		return lexer.Token{}, &clerr.ParseError{
			Message:  fmt.Sprintf("unexpected %s", describe(p.cur)),
			Pos:      pos(p.cur),
			Expected: []string{what},
		}
	}
	t := p.cur
	p.advance()
	return t, nil
}

func describe(t lexer.Token) string {
	if t.Type == lexer.EOF {
		return "end of input"
	}
	if t.Literal != "" {
		return fmt.Sprintf("%q", t.Literal)
	}
	return t.Type.String()
}

// ---------- program ----------

// ParseProgram consumes every top-level declaration until EOF.
func (p *Parser) ParseProgram() (*problem.Problem, *clerr.ParseError) {
	for !p.at(lexer.EOF) {
		if err := p.parseDecl(); err != nil {
			return nil, err
		}
	}
	return p.p, nil
}

func (p *Parser) parseDecl() *clerr.ParseError {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseLet()
	case lexer.FUN:
		return p.parseFun()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.CLASS:
		return p.parseClass()
	case lexer.INST:
		return p.parseInst()
	case lexer.CONSTRAINT:
		return p.parseConstraint()
	case lexer.SOLVE:
		return p.parseSolve()
	case lexer.MINIMIZE, lexer.MAXIMIZE:
		return p.parseOptimize()
	default:
		return p.errf("unexpected %s at top level", describe(p.cur))
	}
}

// ---------- types ----------

// parseType parses T ::= "Bool" | "Int" | "Real" | INT ".." INT | IDENT,
// the four forms spec.md §6 names ("T ∈ {Class, lo..hi, Int, Real}" plus the
// Bool/Structure names Resolve fills in from the name environment).
func (p *Parser) parseType() (types.Type, *clerr.ParseError) {
	switch p.cur.Type {
	case lexer.IDENT:
		switch p.cur.Literal {
		case "Bool":
			p.advance()
			return types.NewBool(), nil
		case "Int":
			p.advance()
			return types.NewInt(), nil
		case "Real":
			p.advance()
			return types.NewReal(), nil
		default:
			name := p.cur.Literal
			p.advance()
			return types.NewUnresolvedName(name), nil
		}
	case lexer.INT:
		lo, err := p.parseIntLit()
		if err != nil {
			return types.Type{}, err
		}
		if _, err := p.expect(lexer.DOTDOT, ".."); err != nil {
			return types.Type{}, err
		}
		hi, err := p.parseIntLit()
		if err != nil {
			return types.Type{}, err
		}
		return types.NewInterval(lo, hi), nil
	default:
		return types.Type{}, p.errf("expected a type, got %s", describe(p.cur))
	}
}

func (p *Parser) parseIntLit() (int, *clerr.ParseError) {
	neg := false
	if p.at(lexer.MINUS) {
		neg = true
		p.advance()
	}
	t, err := p.expect(lexer.INT, "integer")
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(t.Literal)
	if convErr != nil {
		return 0, &clerr.ParseError{Message: "malformed integer literal " + t.Literal, Pos: pos(t)}
	}
	if neg {
		n = -n
	}
	return n, nil
}

// ---------- declarations ----------

func (p *Parser) parseLet() *clerr.ParseError {
	start := p.cur
	p.advance()
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.COLON, ":"); err != nil {
		return err
	}
	typ, err := p.parseType()
	if err != nil {
		return err
	}
	var expr problem.Expr
	if p.at(lexer.EQ) {
		p.advance()
		expr, err = p.parseExpr()
		if err != nil {
			return err
		}
	}
	p.p.AddVariable(problem.Variable{Name: name.Literal, Typ: typ, Expr: expr, Pos: pos(start)})
	return nil
}

func (p *Parser) parseFun() *clerr.ParseError {
	start := p.cur
	p.advance()
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return err
	}
	params, err := p.parseParamList()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.COLON, ":"); err != nil {
		return err
	}
	ret, err := p.parseType()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.EQ, "="); err != nil {
		return err
	}
	body, err := p.parseExpr()
	if err != nil {
		return err
	}
	fnParams := make([]problem.FunctionParam, len(params))
	for i, pr := range params {
		fnParams[i] = problem.FunctionParam{Name: pr.name, Typ: pr.typ, Pos: pr.pos}
	}
	p.p.AddFunction(problem.Function{Name: name.Literal, Params: fnParams, ReturnType: ret, Expr: body, Pos: pos(start)})
	return nil
}

type rawParam struct {
	name string
	typ  types.Type
	pos  clerr.Position
}

func (p *Parser) parseParamList() ([]rawParam, *clerr.ParseError) {
	if _, err := p.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	var params []rawParam
	for !p.at(lexer.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.COMMA, ","); err != nil {
				return nil, err
			}
		}
		nameTok, err := p.expect(lexer.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON, ":"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, rawParam{name: nameTok.Literal, typ: typ, pos: pos(nameTok)})
	}
	if _, err := p.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseStruct parses `struct Name  <members>  end`.
func (p *Parser) parseStruct() *clerr.ParseError {
	start := p.cur
	p.advance()
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return err
	}
	attrs, methods, err := p.parseMembers()
	if err != nil {
		return err
	}
	p.p.AddStructure(problem.Structure{Name: name.Literal, Attributes: attrs, Methods: methods, Pos: pos(start)})
	return nil
}

// parseClass parses `class Name [extends Parent]  <members>  end`.
func (p *Parser) parseClass() *clerr.ParseError {
	start := p.cur
	p.advance()
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return err
	}
	var extends string
	if p.at(lexer.EXTENDS) {
		p.advance()
		parent, err := p.expect(lexer.IDENT, "identifier")
		if err != nil {
			return err
		}
		extends = parent.Literal
	}
	attrs, methods, err := p.parseMembers()
	if err != nil {
		return err
	}
	p.p.AddClass(problem.Class{Name: name.Literal, ExtendsName: extends, Attributes: attrs, Methods: methods, Pos: pos(start)})
	return nil
}

// parseMembers parses a structure/class body: a mix of `name : T = expr`
// attribute declarations and `fun name(...) : T = expr` methods, terminated
// by `end`.
func (p *Parser) parseMembers() ([]problem.Attribute, []problem.Method, *clerr.ParseError) {
	var attrs []problem.Attribute
	var methods []problem.Method
	for !p.at(lexer.END) {
		if p.at(lexer.FUN) {
			start := p.cur
			p.advance()
			name, err := p.expect(lexer.IDENT, "identifier")
			if err != nil {
				return nil, nil, err
			}
			params, err := p.parseParamList()
			if err != nil {
				return nil, nil, err
			}
			if _, err := p.expect(lexer.COLON, ":"); err != nil {
				return nil, nil, err
			}
			ret, err := p.parseType()
			if err != nil {
				return nil, nil, err
			}
			if _, err := p.expect(lexer.EQ, "="); err != nil {
				return nil, nil, err
			}
			body, err := p.parseExpr()
			if err != nil {
				return nil, nil, err
			}
			mParams := make([]problem.MethodParam, len(params))
			for i, pr := range params {
				mParams[i] = problem.MethodParam{Name: pr.name, Typ: pr.typ, Pos: pr.pos}
			}
			methods = append(methods, problem.Method{Name: name.Literal, Params: mParams, ReturnType: ret, Expr: body, Pos: pos(start)})
			continue
		}

		name, err := p.expect(lexer.IDENT, "identifier")
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(lexer.COLON, ":"); err != nil {
			return nil, nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(lexer.EQ, "="); err != nil {
			return nil, nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, nil, err
		}
		attrs = append(attrs, problem.Attribute{Name: name.Literal, Typ: typ, Expr: body, Pos: pos(name)})
	}
	p.advance() // consume `end`
	return attrs, methods, nil
}

func (p *Parser) parseInst() *clerr.ParseError {
	start := p.cur
	p.advance()
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.COLON, ":"); err != nil {
		return err
	}
	typeName, err := p.expect(lexer.IDENT, "structure or class name")
	if err != nil {
		return err
	}
	p.p.AddInstance(problem.Instance{
		Name: name.Literal,
		Structure: problem.InstanceRef{
			Name: typeName.Literal,
			Pos:  pos(typeName),
		},
		Pos: pos(start),
	})
	return nil
}

func (p *Parser) parseConstraint() *clerr.ParseError {
	start := p.cur
	p.advance()
	name, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.EQ, "="); err != nil {
		return err
	}
	body, err := p.parseExpr()
	if err != nil {
		return err
	}
	p.p.AddConstraint(problem.Constraint{Name: name.Literal, Expr: body, Pos: pos(start)})
	return nil
}

func (p *Parser) parseSolve() *clerr.ParseError {
	p.advance()
	p.p.Search = problem.Search{IsOptimize: false}
	return nil
}

// parseOptimize parses `minimize expr until bound` / `maximize expr until
// bound` — the supplemented Optimize search (SPEC_FULL.md §5, grounded on
// original_source/src/problem/search.rs).
func (p *Parser) parseOptimize() *clerr.ParseError {
	minimize := p.at(lexer.MINIMIZE)
	p.advance()
	objective, err := p.parseExpr()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.UNTIL, "until"); err != nil {
		return err
	}
	bound, err := p.parseBound()
	if err != nil {
		return err
	}
	p.p.Search = problem.Search{IsOptimize: true, Expr: objective, Bound: bound, Minimize: minimize}
	return nil
}

func (p *Parser) parseBound() (problem.Bound, *clerr.ParseError) {
	neg := false
	if p.at(lexer.MINUS) {
		neg = true
		p.advance()
	}
	if p.at(lexer.REAL) {
		numer, denom, err := parseRealLiteral(p.cur.Literal)
		if err != nil {
			return problem.Bound{}, &clerr.ParseError{Message: err.Error(), Pos: pos(p.cur)}
		}
		p.advance()
		if neg {
			numer = -numer
		}
		return problem.Bound{IsReal: true, Numer: numer, Denom: denom}, nil
	}
	t, err := p.expect(lexer.INT, "a numeric bound")
	if err != nil {
		return problem.Bound{}, err
	}
	n, convErr := strconv.Atoi(t.Literal)
	if convErr != nil {
		return problem.Bound{}, &clerr.ParseError{Message: "malformed integer literal " + t.Literal, Pos: pos(t)}
	}
	if neg {
		n = -n
	}
	return problem.Bound{Int: n}, nil
}

// ---------- expressions ----------
//
// Expressions are parsed by a small precedence-climbing scheme (the teacher
// repo's actual parser package ships only tests in the retrieval pack, so
// the grammar below is built directly from spec.md §6's informal grammar):
// implication is the loosest-binding, followed by or, and, the relational
// operators, the `as` coercion, additive, multiplicative, unary not/-, and
// postfix call/field/method — matching how the connectives read left to right
// in a constraint body (`a and b => c` parses as `(a and b) => c`).

func (p *Parser) parseExpr() (problem.Expr, *clerr.ParseError) {
	return p.parseImplies()
}

func (p *Parser) parseImplies() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.FAT_ARROW) {
		start := p.cur
		p.advance()
		right, err := p.parseImplies() // right-associative
		if err != nil {
			return nil, err
		}
		return &problem.Binary{Left: left, Op: problem.OpImplies, Right: right, Pos: pos(start)}, nil
	}
	return left, nil
}

func (p *Parser) parseOr() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.OR) {
		start := p.cur
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &problem.Binary{Left: left, Op: problem.OpOr, Right: right, Pos: pos(start)}
	}
	return left, nil
}

func (p *Parser) parseAnd() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.AND) {
		start := p.cur
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &problem.Binary{Left: left, Op: problem.OpAnd, Right: right, Pos: pos(start)}
	}
	return left, nil
}

var relOps = map[lexer.TokenType]problem.BinaryOp{
	lexer.EQ:         problem.OpEq,
	lexer.NOT_EQ:     problem.OpNe,
	lexer.LESS:       problem.OpLt,
	lexer.LESS_EQ:    problem.OpLe,
	lexer.GREATER_EQ: problem.OpGe,
	lexer.GREATER:    problem.OpGt,
}

// parseRelational is non-chaining: `a = b = c` is not valid grammar (each
// relational operator yields a Bool, which has no further relational
// operand), matching the informal grammar's flat operator list.
func (p *Parser) parseRelational() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseAs()
	if err != nil {
		return nil, err
	}
	if op, ok := relOps[p.cur.Type]; ok {
		start := p.cur
		p.advance()
		right, err := p.parseAs()
		if err != nil {
			return nil, err
		}
		return &problem.Binary{Left: left, Op: op, Right: right, Pos: pos(start)}, nil
	}
	return left, nil
}

// parseAs handles the postfix `e as T` coercion, binding looser than
// arithmetic (`x + 1 as Int` reads as `(x + 1) as Int`) but tighter than
// comparison, matching original_source's cast-before-compare precedence.
func (p *Parser) parseAs() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.AS) {
		start := p.cur
		p.advance()
		as, err := p.parseAsTarget(left, start)
		if err != nil {
			return nil, err
		}
		left = as
	}
	return left, nil
}

func (p *Parser) parseAsTarget(e problem.Expr, start lexer.Token) (problem.Expr, *clerr.ParseError) {
	switch p.cur.Type {
	case lexer.IDENT:
		switch p.cur.Literal {
		case "Int":
			p.advance()
			return &problem.UnresolvedAs{E: e, IsInt: true, Pos: pos(start)}, nil
		case "Real":
			p.advance()
			return &problem.UnresolvedAs{E: e, IsReal: true, Pos: pos(start)}, nil
		case "Bool":
			return nil, p.errf("cannot coerce to Bool")
		default:
			name := p.cur.Literal
			p.advance()
			return &problem.UnresolvedAs{E: e, ClassName: name, Pos: pos(start)}, nil
		}
	case lexer.INT:
		lo, err := p.parseIntLit()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.DOTDOT, ".."); err != nil {
			return nil, err
		}
		hi, err := p.parseIntLit()
		if err != nil {
			return nil, err
		}
		return &problem.UnresolvedAs{E: e, IsInterval: true, Lo: lo, Hi: hi, Pos: pos(start)}, nil
	default:
		return nil, p.errf("expected a coercion target, got %s", describe(p.cur))
	}
}

func (p *Parser) parseAdditive() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		start := p.cur
		op := problem.OpAdd
		if p.at(lexer.MINUS) {
			op = problem.OpSub
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &problem.Binary{Left: left, Op: op, Right: right, Pos: pos(start)}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (problem.Expr, *clerr.ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.ASTERISK) || p.at(lexer.SLASH) {
		start := p.cur
		op := problem.OpMul
		if p.at(lexer.SLASH) {
			op = problem.OpDiv
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &problem.Binary{Left: left, Op: op, Right: right, Pos: pos(start)}
	}
	return left, nil
}

func (p *Parser) parseUnary() (problem.Expr, *clerr.ParseError) {
	switch p.cur.Type {
	case lexer.NOT:
		start := p.cur
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &problem.Unary{Op: problem.OpNot, E: e, Pos: pos(start)}, nil
	case lexer.MINUS:
		start := p.cur
		p.advance()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &problem.Unary{Op: problem.OpNeg, E: e, Pos: pos(start)}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles chains of `.a`, `.m(...)` after a primary — e.g.
// `x.left.value`, `self.neighbor(i).cost`.
func (p *Parser) parsePostfix() (problem.Expr, *clerr.ParseError) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.DOT) {
		start := p.cur
		p.advance()
		name, err := p.expect(lexer.IDENT, "field or method name")
		if err != nil {
			return nil, err
		}
		if p.at(lexer.LPAREN) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			e = &problem.UnresolvedMethCall{Receiver: e, Name: name.Literal, Args: args, Pos: pos(start)}
			continue
		}
		e = &problem.UnresolvedAttribute{Receiver: e, Name: name.Literal, Pos: pos(start)}
	}
	return e, nil
}

func (p *Parser) parseArgs() ([]problem.Expr, *clerr.ParseError) {
	if _, err := p.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	var args []problem.Expr
	for !p.at(lexer.RPAREN) {
		if len(args) > 0 {
			if _, err := p.expect(lexer.COMMA, ","); err != nil {
				return nil, err
			}
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	if _, err := p.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (problem.Expr, *clerr.ParseError) {
	start := p.cur
	switch p.cur.Type {
	case lexer.TRUE:
		p.advance()
		return &problem.BoolValue{Value: true, Pos: pos(start)}, nil
	case lexer.FALSE:
		p.advance()
		return &problem.BoolValue{Value: false, Pos: pos(start)}, nil
	case lexer.INT:
		n, convErr := strconv.Atoi(start.Literal)
		if convErr != nil {
			return nil, &clerr.ParseError{Message: "malformed integer literal " + start.Literal, Pos: pos(start)}
		}
		p.advance()
		return &problem.IntValue{Value: n, Pos: pos(start)}, nil
	case lexer.REAL:
		numer, denom, convErr := parseRealLiteral(start.Literal)
		if convErr != nil {
			return nil, &clerr.ParseError{Message: convErr.Error(), Pos: pos(start)}
		}
		p.advance()
		return &problem.RealValue{Numer: numer, Denom: denom, Pos: pos(start)}, nil
	case lexer.SELF:
		p.advance()
		return &problem.Unresolved{Name: "self", Pos: pos(start)}, nil
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.IF:
		return p.parseIf()
	case lexer.FORALL:
		return p.parseQuantifier(problem.QtForall)
	case lexer.EXISTS:
		return p.parseQuantifier(problem.QtExists)
	case lexer.SUM:
		return p.parseQuantifier(problem.QtSum)
	case lexer.PROD:
		return p.parseQuantifier(problem.QtProd)
	case lexer.MINUS:
		// unreachable: parseUnary intercepts MINUS before parsePostfix is
		// ever reached, kept here only so a misrouted call fails loudly
		// rather than silently mis-parsing.
		return nil, p.errf("unexpected %s", describe(p.cur))
	case lexer.IDENT:
		name := start.Literal
		p.advance()
		if p.at(lexer.LPAREN) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &problem.UnresolvedFunCall{Name: name, Args: args, Pos: pos(start)}, nil
		}
		return &problem.Unresolved{Name: name, Pos: pos(start)}, nil
	default:
		return nil, p.errf("unexpected %s", describe(p.cur))
	}
}

// parseIf parses `if c1 then t1 (elif ci then ti)* else e end`.
func (p *Parser) parseIf() (problem.Expr, *clerr.ParseError) {
	start := p.cur
	p.advance()
	var conds, thens []problem.Expr
	for {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.THEN, "then"); err != nil {
			return nil, err
		}
		then, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
		thens = append(thens, then)
		if p.at(lexer.ELIF) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.ELSE, "else"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.END, "end"); err != nil {
		return nil, err
	}
	return &problem.IfThenElse{Conds: conds, Thens: thens, Else: elseExpr, Pos: pos(start)}, nil
}

// parseQuantifier parses `forall|exists|sum|prod p1:T1, p2:T2, ... | body end`.
func (p *Parser) parseQuantifier(op problem.QuantOp) (problem.Expr, *clerr.ParseError) {
	start := p.cur
	p.advance()
	var params []problem.LocalParam
	for {
		name, err := p.expect(lexer.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON, ":"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, problem.LocalParam{Name: name.Literal, Typ: typ, Pos: pos(name)})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.PIPE, "|"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.END, "end"); err != nil {
		return nil, err
	}
	p.quantUID++
	return &problem.Quantifier{Op: op, UID: p.quantUID, Params: params, Body: body, Pos: pos(start)}, nil
}

// parseRealLiteral turns a decimal literal's digit string (e.g. "1.5" or
// "0.25") into an exact numer/denom pair — spec.md §3's Real is rational,
// never a float, so the denominator is fixed by the digit count after the
// point rather than rounded through float64.
func parseRealLiteral(lit string) (numer, denom int, err error) {
	dot := -1
	for i, r := range lit {
		if r == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		n, convErr := strconv.Atoi(lit)
		if convErr != nil {
			return 0, 0, convErr
		}
		return n, 1, nil
	}
	whole := lit[:dot]
	frac := lit[dot+1:]
	digits := whole + frac
	n, convErr := strconv.Atoi(digits)
	if convErr != nil {
		return 0, 0, convErr
	}
	d := 1
	for range frac {
		d *= 10
	}
	return n, d, nil
}
