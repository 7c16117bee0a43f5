package syntax

import (
	"testing"

	"milac/ast"
	"milac/report"
)

func TestParseProgramStatementOrder(t *testing.T) {
	src := `program t;
var a, b: integer;
begin
  a := 1;
  b := 2;
  writeln(a + b)
end.`

	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if prog.Name != "t" {
		t.Fatalf("program name = %q, want t", prog.Name)
	}
	if !prog.Block.IsMain {
		t.Fatal("root block IsMain should be true")
	}

	// var a, b: integer produces two VarDecl statements, then the compound.
	if len(prog.Block.Stmts) != 3 {
		t.Fatalf("top-level stmt count = %d, want 3 (2 decls + compound)", len(prog.Block.Stmts))
	}
	if _, ok := prog.Block.Stmts[0].(*ast.VarDecl); !ok {
		t.Fatalf("stmt[0] = %T, want *ast.VarDecl", prog.Block.Stmts[0])
	}
	if _, ok := prog.Block.Stmts[1].(*ast.VarDecl); !ok {
		t.Fatalf("stmt[1] = %T, want *ast.VarDecl", prog.Block.Stmts[1])
	}
	compound, ok := prog.Block.Stmts[2].(*ast.Compound)
	if !ok {
		t.Fatalf("stmt[2] = %T, want *ast.Compound", prog.Block.Stmts[2])
	}
	if len(compound.Stmts) != 3 {
		t.Fatalf("compound stmt count = %d, want 3, in source order", len(compound.Stmts))
	}
	if _, ok := compound.Stmts[0].(*ast.Assign); !ok {
		t.Fatalf("compound.Stmts[0] = %T, want *ast.Assign", compound.Stmts[0])
	}
	if _, ok := compound.Stmts[2].(*ast.ProcCall); !ok {
		t.Fatalf("compound.Stmts[2] = %T, want *ast.ProcCall", compound.Stmts[2])
	}
}

// TestDanglingElseBindsToNearestIf checks a nested
// if/then/if/then/x/else/y case: the else must attach to the inner if.
func TestDanglingElseBindsToNearestIf(t *testing.T) {
	src := `program t;
var x: integer;
begin
  if 1 = 1 then
    if 2 = 2 then
      x := 1
    else
      x := 2
end.`

	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := prog.Block.Stmts[len(prog.Block.Stmts)-1].(*ast.Compound)
	outerIf, ok := compound.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("outer stmt = %T, want *ast.If", compound.Stmts[0])
	}
	if outerIf.Else != nil {
		t.Fatal("outer if must not have an else branch")
	}
	innerIf, ok := outerIf.Then.(*ast.If)
	if !ok {
		t.Fatalf("outer if's then = %T, want *ast.If", outerIf.Then)
	}
	if innerIf.Else == nil {
		t.Fatal("inner if must carry the else branch (dangling else)")
	}
}

func TestParseForDirection(t *testing.T) {
	src := `program t;
var i: integer;
begin
  for i := 1 to 10 do ;
  for i := 10 downto 1 do ;
end.`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := prog.Block.Stmts[len(prog.Block.Stmts)-1].(*ast.Compound)
	up := compound.Stmts[0].(*ast.For)
	down := compound.Stmts[1].(*ast.For)
	if up.Direction != ast.Up {
		t.Errorf("first for's direction = %v, want Up", up.Direction)
	}
	if down.Direction != ast.Down {
		t.Errorf("second for's direction = %v, want Down", down.Direction)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 2 - 3 - 1 must parse as (2 - 3) - 1, not 2 - (3 - 1).
	prog, err := Parse("program t; begin writeln(2 - 3 - 1) end.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := prog.Block.Stmts[0].(*ast.Compound)
	call := compound.Stmts[0].(*ast.ProcCall)
	outer := call.Args[0].(*ast.BinOp)
	if outer.Op != ast.OpSub {
		t.Fatalf("outer op = %v, want OpSub", outer.Op)
	}
	inner, ok := outer.Lhs.(*ast.BinOp)
	if !ok {
		t.Fatalf("outer.Lhs = %T, want *ast.BinOp (left-folded)", outer.Lhs)
	}
	if inner.Op != ast.OpSub {
		t.Fatalf("inner op = %v, want OpSub", inner.Op)
	}
	if _, ok := outer.Rhs.(*ast.Literal); !ok {
		t.Fatalf("outer.Rhs = %T, want *ast.Literal", outer.Rhs)
	}
}

func TestParseErrorCarriesRuleAndExpectedSet(t *testing.T) {
	_, err := Parse("program t; begin x := end.")
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	perr, ok := err.(*report.ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *report.ParseError", err)
	}
	if perr.Rule == "" {
		t.Error("ParseError.Rule should not be empty")
	}
	if len(perr.Expected) == 0 {
		t.Error("ParseError.Expected should not be empty for a primary-expression mismatch")
	}
}

func TestParseForwardDeclarationAndArrayDecl(t *testing.T) {
	src := `program t;
function isEven(n: integer): integer; forward;
var arr: array[-5..5] of integer;
function isEven(n: integer): integer;
begin
  if n = 0 then isEven := 1 else isEven := 0
end;
begin
end.`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var forwardDecl, bodyDecl *ast.FunDecl
	var arrDecl *ast.ArrayDecl
	for _, s := range prog.Block.Stmts {
		switch n := s.(type) {
		case *ast.FunDecl:
			if n.Forward {
				forwardDecl = n
			} else {
				bodyDecl = n
			}
		case *ast.ArrayDecl:
			arrDecl = n
		}
	}
	if forwardDecl == nil || bodyDecl == nil {
		t.Fatal("expected both a forward and a defining FunDecl")
	}
	if forwardDecl.Body != nil {
		t.Error("forward declaration must have a nil body")
	}
	if bodyDecl.Body == nil {
		t.Error("defining declaration must have a body")
	}
	if arrDecl == nil {
		t.Fatal("expected an ArrayDecl for arr")
	}
	if arrDecl.Type.Lo != -5 || arrDecl.Type.Hi != 5 {
		t.Errorf("array bounds = [%d..%d], want [-5..5]", arrDecl.Type.Lo, arrDecl.Type.Hi)
	}
}
