package syntax

import (
	"testing"

	"milac/report"
)

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	lex, err := NewLexer("MyVar _my_var123 integer begin")
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}

	tok := lex.Peek()
	if tok.Kind != TOK_IDENT || tok.Ident != "MyVar" {
		t.Fatalf("tok1 = %+v, want identifier MyVar", tok)
	}
	if _, ok, err := lex.Match(TOK_IDENT); err != nil || !ok {
		t.Fatalf("Match(TOK_IDENT) failed: ok=%v err=%v", ok, err)
	}

	tok = lex.Peek()
	if tok.Kind != TOK_IDENT || tok.Ident != "_my_var123" {
		t.Fatalf("tok2 = %+v, want identifier _my_var123", tok)
	}
	lex.Match(TOK_IDENT)

	tok = lex.Peek()
	if tok.Kind != TOK_INTEGER {
		t.Fatalf("tok3 kind = %d, want TOK_INTEGER (keyword lookup)", tok.Kind)
	}
	lex.Match(TOK_INTEGER)

	tok = lex.Peek()
	if tok.Kind != TOK_BEGIN {
		t.Fatalf("tok4 kind = %d, want TOK_BEGIN", tok.Kind)
	}
}

func TestLexerOperatorsAndPunctuation(t *testing.T) {
	lex, err := NewLexer("+ - * / = < > <> <= >= := ; : , . .. ( ) [ ]")
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}

	want := []int{
		TOK_PLUS, TOK_MINUS, TOK_STAR, TOK_SLASH, TOK_EQ, TOK_LT, TOK_GT,
		TOK_NEQ, TOK_LTEQ, TOK_GTEQ, TOK_ASSIGN, TOK_SEMI, TOK_COLON,
		TOK_COMMA, TOK_DOT, TOK_DOTDOT, TOK_LPAREN, TOK_RPAREN,
		TOK_LBRACKET, TOK_RBRACKET,
	}

	for i, kind := range want {
		tok := lex.Peek()
		if tok.Kind != kind {
			t.Fatalf("token[%d] kind = %d, want %d", i, tok.Kind, kind)
		}
		if _, ok, err := lex.Match(kind); err != nil || !ok {
			t.Fatalf("token[%d] Match failed: ok=%v err=%v", i, ok, err)
		}
	}

	if lex.Peek().Kind != TOK_EOF {
		t.Fatalf("trailing token kind = %d, want TOK_EOF", lex.Peek().Kind)
	}
}

// TestLexerNumericLiterals checks decimal, hex ($), and octal (&) integer
// literals alongside real literals, each round-tripped to its numeric value.
func TestLexerNumericLiterals(t *testing.T) {
	tests := []struct {
		input   string
		isReal  bool
		intVal  int32
		realVal float64
	}{
		{"123.456", true, 0, 123.456},
		{"0.99", true, 0, 0.99},
		{"&1234", false, 668, 0},
		{"$a9f8e", false, 696206, 0},
		{"&0000", false, 0, 0},
		{"10", false, 10, 0},
		{"$10", false, 16, 0},
		{"&10", false, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lex, err := NewLexer(tt.input)
			if err != nil {
				t.Fatalf("NewLexer(%q): %v", tt.input, err)
			}
			tok := lex.Peek()
			if tt.isReal {
				if tok.Kind != TOK_REAL_LIT {
					t.Fatalf("kind = %d, want TOK_REAL_LIT", tok.Kind)
				}
				if tok.RealVal != tt.realVal {
					t.Errorf("RealVal = %v, want %v", tok.RealVal, tt.realVal)
				}
			} else {
				if tok.Kind != TOK_INT_LIT {
					t.Fatalf("kind = %d, want TOK_INT_LIT", tok.Kind)
				}
				if tok.IntVal != tt.intVal {
					t.Errorf("IntVal = %v, want %v", tok.IntVal, tt.intVal)
				}
			}
		})
	}
}

func TestLexerComment(t *testing.T) {
	lex, err := NewLexer("my_var { this is a comment } = 123")
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}
	if lex.Peek().Kind != TOK_IDENT {
		t.Fatalf("kind = %d, want TOK_IDENT", lex.Peek().Kind)
	}
	lex.Match(TOK_IDENT)
	if lex.Peek().Kind != TOK_EQ {
		t.Fatalf("kind = %d, want TOK_EQ (comment not skipped)", lex.Peek().Kind)
	}
	lex.Match(TOK_EQ)
	if lex.Peek().Kind != TOK_INT_LIT || lex.Peek().IntVal != 123 {
		t.Fatalf("tok = %+v, want integer literal 123", lex.Peek())
	}
}

func TestLexerUnterminatedCommentFails(t *testing.T) {
	_, err := NewLexer("{ unterminated")
	if err == nil {
		t.Fatal("expected an error for an unterminated comment")
	}
	lexErr, ok := err.(*report.LexerError)
	if !ok {
		t.Fatalf("error type = %T, want *report.LexerError", err)
	}
	if lexErr.Message != "Unexpected end of file in a comment" {
		t.Errorf("message = %q", lexErr.Message)
	}
}

func TestLexerInvalidOctalDigit(t *testing.T) {
	_, err := NewLexer("&1289")
	if err == nil {
		t.Fatal("expected an error for an invalid octal digit")
	}
	lexErr, ok := err.(*report.LexerError)
	if !ok || lexErr.Message != "Invalid octal digit" {
		t.Fatalf("err = %v, want LexerError(Invalid octal digit)", err)
	}
}

func TestLexerInvalidHexDigit(t *testing.T) {
	_, err := NewLexer("$1g9")
	if err == nil {
		t.Fatal("expected an error for an invalid hex digit")
	}
	lexErr, ok := err.(*report.LexerError)
	if !ok || lexErr.Message != "Invalid hex digit" {
		t.Fatalf("err = %v, want LexerError(Invalid hex digit)", err)
	}
}

func TestLexerUnknownCharacterFails(t *testing.T) {
	_, err := NewLexer("?")
	if err == nil {
		t.Fatal("expected an error for an unlexable character")
	}
	if _, ok := err.(*report.LexerError); !ok {
		t.Fatalf("error type = %T, want *report.LexerError", err)
	}
}

func TestLexerPositionTracking(t *testing.T) {
	lex, err := NewLexer("8230 +\n 0099")
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}

	tok := lex.Peek()
	if tok.IntVal != 8230 || tok.Pos != (report.Position{Line: 1, Col: 1}) {
		t.Fatalf("tok1 = %+v, want 8230 at 1:1", tok)
	}
	lex.Match(TOK_INT_LIT)

	tok = lex.Peek()
	if tok.Kind != TOK_PLUS || tok.Pos != (report.Position{Line: 1, Col: 6}) {
		t.Fatalf("tok2 = %+v, want + at 1:6", tok)
	}
	lex.Match(TOK_PLUS)

	tok = lex.Peek()
	if tok.IntVal != 99 || tok.Pos != (report.Position{Line: 2, Col: 2}) {
		t.Fatalf("tok3 = %+v, want 99 at 2:2", tok)
	}
}

func TestLexerMatchLeavesLookaheadOnMismatch(t *testing.T) {
	lex, err := NewLexer("begin")
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}
	tok, ok, err := lex.Match(TOK_END)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if ok {
		t.Fatal("Match should not have consumed a mismatched token")
	}
	if tok != (Token{}) {
		t.Fatalf("Match returned %+v on mismatch, want zero value", tok)
	}
	if lex.Peek().Kind != TOK_BEGIN {
		t.Fatalf("lookahead kind = %d, want TOK_BEGIN still pending", lex.Peek().Kind)
	}
}
