package lexer

import "testing"

func TestNextTokenCoversEveryDelimiterAndOperator(t *testing.T) {
	input := `let x : 1..10 = 3
fun f(a, b) : Int = a + b
struct Point end
class Animal extends Thing end
inst a : Point
constraint forall x in a => x.age >= 0
solve
minimize x until 0.5
if x then 1 elif y then 2 else 3 end
exists x: Int = self.value /= 4 <= 5 >= 6 as Animal | 1.25
- * / < >`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LET, "let"}, {IDENT, "x"}, {COLON, ":"}, {INT, "1"}, {DOTDOT, ".."}, {INT, "10"}, {EQ, "="}, {INT, "3"},
		{FUN, "fun"}, {IDENT, "f"}, {LPAREN, "("}, {IDENT, "a"}, {COMMA, ","}, {IDENT, "b"}, {RPAREN, ")"},
		{COLON, ":"}, {IDENT, "Int"}, {EQ, "="}, {IDENT, "a"}, {PLUS, "+"}, {IDENT, "b"},
		{STRUCT, "struct"}, {IDENT, "Point"}, {END, "end"},
		{CLASS, "class"}, {IDENT, "Animal"}, {EXTENDS, "extends"}, {IDENT, "Thing"}, {END, "end"},
		{INST, "inst"}, {IDENT, "a"}, {COLON, ":"}, {IDENT, "Point"},
		{CONSTRAINT, "constraint"}, {FORALL, "forall"}, {IDENT, "x"}, {IDENT, "in"}, {IDENT, "a"}, {FAT_ARROW, "=>"},
		{IDENT, "x"}, {DOT, "."}, {IDENT, "age"}, {GREATER_EQ, ">="}, {INT, "0"},
		{SOLVE, "solve"},
		{MINIMIZE, "minimize"}, {IDENT, "x"}, {UNTIL, "until"}, {REAL, "0.5"},
		{IF, "if"}, {IDENT, "x"}, {THEN, "then"}, {INT, "1"}, {ELIF, "elif"}, {IDENT, "y"}, {THEN, "then"}, {INT, "2"},
		{ELSE, "else"}, {INT, "3"}, {END, "end"},
		{EXISTS, "exists"}, {IDENT, "x"}, {COLON, ":"}, {IDENT, "Int"}, {EQ, "="},
		{SELF, "self"}, {DOT, "."}, {IDENT, "value"}, {NOT_EQ, "/="}, {INT, "4"}, {LESS_EQ, "<="}, {INT, "5"},
		{GREATER_EQ, ">="}, {INT, "6"}, {AS, "as"}, {IDENT, "Animal"}, {PIPE, "|"}, {REAL, "1.25"},
		{MINUS, "-"}, {ASTERISK, "*"}, {SLASH, "/"}, {LESS, "<"}, {GREATER, ">"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong type. expected=%s, got=%s (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - wrong literal. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New("let x = 1 # this is ignored\nlet y = 2")
	var types []TokenType
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		types = append(types, tok.Type)
	}
	want := []TokenType{LET, IDENT, EQ, INT, LET, IDENT, EQ, INT}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestIllegalCharacterIsReportedAndTokenized(t *testing.T) {
	l := New("let x = @")
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL && tok.Literal != "@" {
			t.Errorf("ILLEGAL literal = %q, want %q", tok.Literal, "@")
		}
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d: %v", len(l.Errors()), l.Errors())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("let x = 1")
	first := l.Peek(0)
	if first.Type != LET {
		t.Fatalf("Peek(0) = %s, want LET", first.Type)
	}
	second := l.Peek(1)
	if second.Type != IDENT {
		t.Fatalf("Peek(1) = %s, want IDENT", second.Type)
	}
	// Peeking must not have consumed tokens.
	if tok := l.NextToken(); tok.Type != LET {
		t.Fatalf("NextToken() after Peek = %s, want LET", tok.Type)
	}
}

func TestLinesAndColumnsTrackNewlines(t *testing.T) {
	l := New("let\nx")
	tok := l.NextToken() // let
	if tok.Pos.Line != 1 {
		t.Errorf("let line = %d, want 1", tok.Pos.Line)
	}
	tok = l.NextToken() // x
	if tok.Pos.Line != 2 {
		t.Errorf("x line = %d, want 2", tok.Pos.Line)
	}
}

func TestLookupIdentClassifiesKeywords(t *testing.T) {
	if LookupIdent("forall") != FORALL {
		t.Error("forall should be classified as FORALL")
	}
	if LookupIdent("somename") != IDENT {
		t.Error("somename should be classified as IDENT")
	}
}
