package symbols

import (
	"testing"

	"milac/ast"
)

func intSym(name string) *Symbol {
	return &Symbol{Name: name, Type: ast.Primitive{Kind: ast.Integer}, Storage: Local}
}

func TestDefineRejectsRedeclarationInSameScope(t *testing.T) {
	tbl := New()
	if !tbl.Define(intSym("x")) {
		t.Fatal("first definition of x should succeed")
	}
	if tbl.Define(intSym("x")) {
		t.Fatal("redefining x in the same scope should fail")
	}
}

func TestPushPopScopeRestoresOuterState(t *testing.T) {
	tbl := New()
	tbl.Define(intSym("g"))

	tbl.PushScope()
	tbl.Define(intSym("inner"))
	if tbl.Lookup("g") == nil {
		t.Fatal("outer symbol g should be visible from the inner scope")
	}
	if tbl.Lookup("inner") == nil {
		t.Fatal("inner should be visible in its own scope")
	}
	tbl.PopScope()

	if tbl.Lookup("inner") != nil {
		t.Fatal("inner should no longer be visible after PopScope")
	}
	if tbl.Lookup("g") == nil {
		t.Fatal("outer symbol g must still be visible after PopScope")
	}
}

func TestShadowingRestoresOuterDefinitionOnPop(t *testing.T) {
	tbl := New()
	outer := intSym("x")
	outer.Value = "outer"
	tbl.Define(outer)

	tbl.PushScope()
	inner := intSym("x")
	inner.Value = "inner"
	if !tbl.Define(inner) {
		t.Fatal("shadowing x in an inner scope must be permitted")
	}
	if got := tbl.Lookup("x"); got.Value != "inner" {
		t.Fatalf("Lookup(x) inside inner scope = %v, want inner", got.Value)
	}
	tbl.PopScope()

	if got := tbl.Lookup("x"); got.Value != "outer" {
		t.Fatalf("Lookup(x) after pop = %v, want outer restored", got.Value)
	}
}

func TestDefinedInCurrentScope(t *testing.T) {
	tbl := New()
	tbl.Define(intSym("g"))

	tbl.PushScope()
	if tbl.DefinedInCurrentScope("g") {
		t.Fatal("g was defined in the outer scope, not the current one")
	}
	tbl.Define(intSym("local"))
	if !tbl.DefinedInCurrentScope("local") {
		t.Fatal("local was defined in the current scope")
	}
}

func TestAtGlobalScope(t *testing.T) {
	tbl := New()
	if !tbl.AtGlobalScope() {
		t.Fatal("a freshly-created table should be at global scope")
	}
	tbl.PushScope()
	if tbl.AtGlobalScope() {
		t.Fatal("after PushScope, the table should no longer be at global scope")
	}
	tbl.PopScope()
	if !tbl.AtGlobalScope() {
		t.Fatal("after popping back to the only scope, AtGlobalScope should be true again")
	}
}

func TestLookupUndefinedReturnsNil(t *testing.T) {
	tbl := New()
	if tbl.Lookup("nope") != nil {
		t.Fatal("looking up an undefined name should return nil")
	}
}
