package report

import "testing"

func TestPhaseLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"lexer", NewLexerError(Position{1, 1}, "bad"), "Lexer error"},
		{"parser", NewParseError("rule", "x", Position{1, 1}), "Parser error"},
		{"codegen", NewCodeGenError(Position{1, 1}, "bad"), "Code generation error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhaseLabel(tt.err); got != tt.want {
				t.Errorf("PhaseLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrorMessageListsExpectedSet(t *testing.T) {
	err := NewParseError("statement", "+", Position{4, 2}, "identifier", "begin")
	got := err.Error()
	want := "unexpected + while parsing statement: expected one of [identifier, begin] (at 4:2)"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorMessageWithNoExpectedSet(t *testing.T) {
	err := NewParseError("statement", "+", Position{4, 2})
	got := err.Error()
	want := "unexpected + while parsing statement (at 4:2)"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
