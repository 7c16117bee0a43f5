package cmd

import (
	"fmt"
	"strings"

	"milac/ast"
	"milac/util"
)

// dumpProgram prints a indented textual rendering of prog's AST to stdout,
// the "-v" companion to the phase trace: useful for checking how a source
// file parsed without reaching for a debugger.
func dumpProgram(prog *ast.Program) {
	fmt.Println("=== AST ===")
	fmt.Printf("program %s\n", prog.Name)
	dumpBlock(prog.Block, "  ")
}

func dumpBlock(b *ast.Block, indent string) {
	for _, s := range b.Stmts {
		dumpStmt(s, indent)
	}
}

func dumpStmt(s ast.Stmt, indent string) {
	switch n := s.(type) {
	case *ast.Empty:
		// nothing to show

	case *ast.ConstDef:
		fmt.Printf("%sconst %s = %s\n", indent, n.Name, dumpExpr(n.Expr))

	case *ast.VarDecl:
		fmt.Printf("%svar %s: %s\n", indent, n.Name, n.Type)

	case *ast.ArrayDecl:
		fmt.Printf("%svar %s: %s\n", indent, n.Name, n.Type)

	case *ast.ProcDecl:
		fmt.Printf("%sprocedure %s(%s)%s\n", indent, n.Name, paramList(n.Params), forwardSuffix(n.Forward))
		if n.Body != nil {
			dumpBlock(n.Body, indent+"  ")
		}

	case *ast.FunDecl:
		fmt.Printf("%sfunction %s(%s): %s%s\n", indent, n.Name, paramList(n.Params), n.RetType, forwardSuffix(n.Forward))
		if n.Body != nil {
			dumpBlock(n.Body, indent+"  ")
		}

	case *ast.Compound:
		fmt.Printf("%sbegin\n", indent)
		for _, stmt := range n.Stmts {
			dumpStmt(stmt, indent+"  ")
		}
		fmt.Printf("%send\n", indent)

	case *ast.Assign:
		fmt.Printf("%s%s := %s\n", indent, dumpExpr(n.Lhs), dumpExpr(n.Rhs))

	case *ast.If:
		fmt.Printf("%sif %s then\n", indent, dumpExpr(n.Cond))
		dumpStmt(n.Then, indent+"  ")
		if n.Else != nil {
			fmt.Printf("%selse\n", indent)
			dumpStmt(n.Else, indent+"  ")
		}

	case *ast.While:
		fmt.Printf("%swhile %s do\n", indent, dumpExpr(n.Cond))
		dumpStmt(n.Body, indent+"  ")

	case *ast.For:
		word := "to"
		if n.Direction == ast.Down {
			word = "downto"
		}
		fmt.Printf("%sfor %s := %s %s %s do\n", indent, dumpExpr(n.Init.Lhs), dumpExpr(n.Init.Rhs), word, dumpExpr(n.To))
		dumpStmt(n.Body, indent+"  ")

	case *ast.ProcCall:
		fmt.Printf("%s%s(%s)\n", indent, n.Name, argList(n.Args))

	case *ast.Break:
		fmt.Printf("%sbreak\n", indent)

	case *ast.Exit:
		fmt.Printf("%sexit\n", indent)
	}
}

func paramList(params []*ast.VarDecl) string {
	names := util.Map(params, func(p *ast.VarDecl) string {
		return p.Name + ": " + p.Type.String()
	})
	return strings.Join(names, ", ")
}

func argList(args []ast.Expr) string {
	return strings.Join(util.Map(args, dumpExpr), ", ")
}

func forwardSuffix(forward bool) string {
	if forward {
		return "; forward"
	}
	return ""
}

func dumpExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Literal:
		if n.IsReal {
			return fmt.Sprintf("%v", n.RealVal)
		}
		return fmt.Sprintf("%d", n.IntVal)

	case *ast.VarRef:
		return n.Name

	case *ast.ArrayRef:
		return fmt.Sprintf("%s[%s]", n.Name, dumpExpr(n.Index))

	case *ast.UnaryOp:
		return fmt.Sprintf("(%s %s)", n.Op, dumpExpr(n.X))

	case *ast.BinOp:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(n.Lhs), n.Op, dumpExpr(n.Rhs))

	case *ast.Call:
		return fmt.Sprintf("%s(%s)", n.Name, argList(n.Args))
	}
	return "?"
}
