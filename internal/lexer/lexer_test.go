package lexer

import "testing"

func collect(src string) []Token {
	l := New(src)
	var out []Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Type == EOF || tok.Type == ERROR {
			break
		}
	}
	return out
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := collect("func main() var x int endfunc")
	want := []TokenType{FUNC, IDENT, LPAREN, RPAREN, VAR, IDENT, INT, ENDFUNC, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestOperators(t *testing.T) {
	toks := collect(":= == != <> <= >= < > + - * / %")
	want := []TokenType{ASSIGN, EQ, NEQ, NEQ, LE, GE, LT, GT, PLUS, MINUS, STAR, SLASH, PERCENT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	toks := collect("3 3.14 2e10")
	want := []TokenType{INT_LIT, FLOAT_LIT, FLOAT_LIT, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
}

func TestCharAndStringLiterals(t *testing.T) {
	toks := collect(`'a' "hello\n"`)
	if toks[0].Type != CHAR_LIT || toks[0].Val != "a" {
		t.Errorf("char literal: got %+v", toks[0])
	}
	// Raw source text is kept, escape sequences un-decoded, so codegen
	// can reproduce the literal verbatim in WRITES/CHLOAD operands.
	if toks[1].Type != STRING_LIT || toks[1].Val != `hello\n` {
		t.Errorf("string literal: got %+v", toks[1])
	}
}

func TestLineComment(t *testing.T) {
	toks := collect("x // trailing comment\ny")
	want := []TokenType{IDENT, IDENT, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, w)
		}
	}
	if toks[1].Line != 2 {
		t.Errorf("second ident line: got %d, want 2", toks[1].Line)
	}
}

func TestUnknownCharacterIsError(t *testing.T) {
	toks := collect("x @ y")
	if toks[1].Type != ERROR {
		t.Errorf("expected ERROR token for '@', got %s", toks[1].Type)
	}
}
