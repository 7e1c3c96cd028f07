package lexer

import "testing"

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func assertTypes(t *testing.T, got []Token, want []TokenType) {
	t.Helper()
	gotTypes := tokenTypes(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(gotTypes), gotTypes, len(want), want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, gotTypes[i], want[i])
		}
	}
}

func TestScanOperators(t *testing.T) {
	l := New("+ += ++ - -= -- -> * *= / /= /< /> ! != = == < <= > >= . .. ...")
	got := l.ScanTokens()
	want := []TokenType{
		PLUS, PLUS_EQUAL, PLUS_PLUS,
		MINUS, MINUS_EQUAL, MINUS_MINUS, ARROW,
		STAR, STAR_EQUAL,
		SLASH, SLASH_EQUAL, SLASH_LESS, SLASH_GREATER,
		BANG, BANG_EQUAL,
		EQUAL, EQUAL_EQUAL,
		LESS, LESS_EQUAL,
		GREATER, GREATER_EQUAL,
		DOT, DOT_DOT, DOT_DOT_DOT,
		EOF,
	}
	assertTypes(t, got, want)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	l := New("let x = fun class self super")
	got := l.ScanTokens()
	want := []TokenType{LET, IDENTIFIER, EQUAL, FUN, CLASS, SELF, SUPER, EOF}
	assertTypes(t, got, want)
}

func TestScanNumber(t *testing.T) {
	l := New("42 3.14")
	got := l.ScanTokens()
	if got[0].Literal.(float64) != 42 {
		t.Fatalf("want 42, got %v", got[0].Literal)
	}
	if got[1].Literal.(float64) != 3.14 {
		t.Fatalf("want 3.14, got %v", got[1].Literal)
	}
}

func TestScanStringNoEscapes(t *testing.T) {
	l := New(`"a\nb"`)
	got := l.ScanTokens()
	if got[0].Type != STRING {
		t.Fatalf("want STRING, got %s", got[0].Type)
	}
	if got[0].Literal.(string) != `a\nb` {
		t.Fatalf("escape sequences must not be processed, got %q", got[0].Literal)
	}
}

func TestScanStringSpanningLines(t *testing.T) {
	l := New("\"a\nb\"\nlet")
	got := l.ScanTokens()
	if got[0].Type != STRING || got[0].Literal.(string) != "a\nb" {
		t.Fatalf("unexpected string token: %+v", got[0])
	}
	// the NEWLINE inside the string must not be tokenized, only the one after it
	want := []TokenType{STRING, NEWLINE, LET, EOF}
	assertTypes(t, got, want)
}

func TestScanNewlineIsSignificant(t *testing.T) {
	l := New("let x\nlet y")
	got := l.ScanTokens()
	want := []TokenType{LET, IDENTIFIER, NEWLINE, LET, IDENTIFIER, EOF}
	assertTypes(t, got, want)
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	l := New("/* never closes")
	l.ScanTokens()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for unterminated block comment")
	}
}

func TestLineCommentConsumedToEndOfLine(t *testing.T) {
	l := New("let x // trailing comment\nlet y")
	got := l.ScanTokens()
	want := []TokenType{LET, IDENTIFIER, NEWLINE, LET, IDENTIFIER, EOF}
	assertTypes(t, got, want)
}
