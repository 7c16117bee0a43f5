package report

import "testing"

func TestTrackerAdvance(t *testing.T) {
	tr := NewTracker()
	if got := tr.Pos(); got != (Position{Line: 1, Col: 1}) {
		t.Fatalf("initial position = %v, want 1:1", got)
	}

	for _, r := range "ab" {
		tr.Advance(r)
	}
	if got := tr.Pos(); got != (Position{Line: 1, Col: 3}) {
		t.Fatalf("after 2 runes = %v, want 1:3", got)
	}

	tr.Advance('\n')
	if got := tr.Pos(); got != (Position{Line: 2, Col: 1}) {
		t.Fatalf("after newline = %v, want 2:1", got)
	}

	tr.Advance('x')
	if got := tr.Pos(); got != (Position{Line: 2, Col: 2}) {
		t.Fatalf("after newline + rune = %v, want 2:2", got)
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Col: 7}
	if got := p.String(); got != "3:7" {
		t.Fatalf("String() = %q, want %q", got, "3:7")
	}
}
