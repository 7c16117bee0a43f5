package lower

import (
	"milac/ast"
	"milac/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lowerStmt dispatches on the concrete statement (or declaration -- the
// grammar treats declarations as statement variants restricted to the head
// of a block) and lowers it in place at the current insertion point.
func (lz *Lowerer) lowerStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Empty:
		return nil

	case *ast.Assign:
		return lz.lowerAssign(n)

	case *ast.If:
		return lz.lowerIf(n)

	case *ast.While:
		return lz.lowerWhile(n)

	case *ast.For:
		return lz.lowerFor(n)

	case *ast.Compound:
		for _, stmt := range n.Stmts {
			if err := lz.lowerStmt(stmt); err != nil {
				return err
			}
		}
		return nil

	case *ast.ProcCall:
		_, _, err := lz.lowerCall(n.Name, n.Args, n.Pos())
		return err

	case *ast.Break:
		return lz.lowerBreak(n)

	case *ast.Exit:
		return lz.lowerExit(n)

	case *ast.ConstDef:
		return lz.lowerConstDef(n)

	case *ast.VarDecl:
		return lz.lowerVarDecl(n)

	case *ast.ArrayDecl:
		return lz.lowerArrayDecl(n)

	case *ast.ProcDecl:
		return lz.lowerProcDecl(n)

	case *ast.FunDecl:
		return lz.lowerFunDecl(n)
	}

	return report.NewCodeGenError(s.Pos(), "unsupported statement")
}

// resolveLValue resolves e -- a VarRef or ArrayRef -- to the address of its
// storage without loading through it, alongside its element type and
// whether that storage is immutable. It is shared by Assign and readln,
// the two constructs that need a bare storage location rather than a value.
func (lz *Lowerer) resolveLValue(e ast.Expr) (value.Value, ast.Type, bool, error) {
	switch n := e.(type) {
	case *ast.VarRef:
		sym := lz.syms.Lookup(n.Name)
		if sym == nil {
			return nil, nil, false, report.NewCodeGenError(n.Pos(), "undefined name %q", n.Name)
		}
		return sym.Value.(value.Value), sym.Type, sym.Immutable, nil

	case *ast.ArrayRef:
		ptr, elemType, err := lz.arrayElemPtr(n)
		if err != nil {
			return nil, nil, false, err
		}
		sym := lz.syms.Lookup(n.Name)
		return ptr, elemType, sym != nil && sym.Immutable, nil
	}

	return nil, nil, false, report.NewCodeGenError(e.Pos(), "expected a variable or array element")
}

// lowerAssign resolves lhs's storage, forbids assignment to an immutable
// symbol, inserts the implicit int->real conversion where the lhs is real
// and the rhs is integer, and rejects the reverse (real assigned to
// integer).
func (lz *Lowerer) lowerAssign(n *ast.Assign) error {
	ptr, lhsType, immutable, err := lz.resolveLValue(n.Lhs)
	if err != nil {
		return err
	}
	if immutable {
		return report.NewCodeGenError(n.Pos(), "cannot assign to a constant")
	}

	val, rhsType, err := lz.lowerExpr(n.Rhs)
	if err != nil {
		return err
	}

	if isReal(lhsType) && !isReal(rhsType) {
		val = lz.promoteToReal(val, rhsType)
	} else if !isReal(lhsType) && isReal(rhsType) {
		return report.NewCodeGenError(n.Pos(), "cannot assign real to integer")
	}

	lz.block.NewStore(val, ptr)
	return nil
}

// lowerIf builds the body/elseBody/after blocks, branching on the 1-bit
// condition; each arm unconditionally branches to after, which becomes the
// new insertion point.
func (lz *Lowerer) lowerIf(n *ast.If) error {
	condVal, condType, err := lz.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	cond, err := lz.toBoolCond(condVal, condType, n.Cond.Pos())
	if err != nil {
		return err
	}

	thenBlock := lz.newBlock("if.then")
	afterBlock := lz.newBlock("if.after")

	if n.Else != nil {
		elseBlock := lz.newBlock("if.else")
		lz.block.NewCondBr(cond, thenBlock, elseBlock)

		lz.block = thenBlock
		if err := lz.lowerStmt(n.Then); err != nil {
			return err
		}
		lz.block.NewBr(afterBlock)

		lz.block = elseBlock
		if err := lz.lowerStmt(n.Else); err != nil {
			return err
		}
		lz.block.NewBr(afterBlock)
	} else {
		lz.block.NewCondBr(cond, thenBlock, afterBlock)

		lz.block = thenBlock
		if err := lz.lowerStmt(n.Then); err != nil {
			return err
		}
		lz.block.NewBr(afterBlock)
	}

	lz.block = afterBlock
	return nil
}

// lowerWhile builds cond/body/after. Every Break reachable in the body
// (without descending into a nested loop, which owns its own Breaks) is
// assigned after as its target before the body is lowered. The body falls
// through back to cond at its end.
func (lz *Lowerer) lowerWhile(n *ast.While) error {
	condBlock := lz.newBlock("while.cond")
	bodyBlock := lz.newBlock("while.body")
	afterBlock := lz.newBlock("while.after")

	lz.block.NewBr(condBlock)

	lz.block = condBlock
	condVal, condType, err := lz.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	cond, err := lz.toBoolCond(condVal, condType, n.Cond.Pos())
	if err != nil {
		return err
	}
	lz.block.NewCondBr(cond, bodyBlock, afterBlock)

	for _, b := range ast.CollectBreaks(n.Body) {
		lz.breakTargets[b] = afterBlock
	}

	lz.block = bodyBlock
	if err := lz.lowerStmt(n.Body); err != nil {
		return err
	}
	lz.block.NewBr(condBlock)

	lz.block = afterBlock
	return nil
}

// lowerFor builds init/cond/body/after. The loop bounds are evaluated once,
// in init; TO counts with <=, DOWNTO with >=; the control variable is
// incremented or decremented by 1 after the body.
func (lz *Lowerer) lowerFor(n *ast.For) error {
	initBlock := lz.newBlock("for.init")
	condBlock := lz.newBlock("for.cond")
	bodyBlock := lz.newBlock("for.body")
	afterBlock := lz.newBlock("for.after")

	lz.block.NewBr(initBlock)

	lz.block = initBlock
	if err := lz.lowerAssign(n.Init); err != nil {
		return err
	}
	toVal, toType, err := lz.lowerExpr(n.To)
	if err != nil {
		return err
	}
	if isReal(toType) {
		return report.NewCodeGenError(n.To.Pos(), "for-loop bound must be an integer")
	}
	lz.block.NewBr(condBlock)

	loopVar, ok := n.Init.Lhs.(*ast.VarRef)
	if !ok {
		return report.NewCodeGenError(n.Pos(), "for-loop control variable must be a plain variable")
	}
	loopSym := lz.syms.Lookup(loopVar.Name)
	if loopSym == nil {
		return report.NewCodeGenError(loopVar.Pos(), "undefined name %q", loopVar.Name)
	}
	if isReal(loopSym.Type) {
		return report.NewCodeGenError(loopVar.Pos(), "for-loop control variable must be an integer")
	}
	loopPtr := loopSym.Value.(value.Value)

	lz.block = condBlock
	cur := lz.block.NewLoad(types.I32, loopPtr)
	var cmp value.Value
	if n.Direction == ast.Up {
		cmp = lz.block.NewICmp(icmpPred(ast.OpLe), cur, toVal)
	} else {
		cmp = lz.block.NewICmp(icmpPred(ast.OpGe), cur, toVal)
	}
	lz.block.NewCondBr(cmp, bodyBlock, afterBlock)

	for _, b := range ast.CollectBreaks(n.Body) {
		lz.breakTargets[b] = afterBlock
	}

	lz.block = bodyBlock
	if err := lz.lowerStmt(n.Body); err != nil {
		return err
	}
	cur = lz.block.NewLoad(types.I32, loopPtr)
	var next value.Value
	if n.Direction == ast.Up {
		next = lz.block.NewAdd(cur, constant.NewInt(types.I32, 1))
	} else {
		next = lz.block.NewSub(cur, constant.NewInt(types.I32, 1))
	}
	lz.block.NewStore(next, loopPtr)
	lz.block.NewBr(condBlock)

	lz.block = afterBlock
	return nil
}

// lowerBreak branches to the nearest enclosing loop's after block, then
// opens a fresh block so any statically-following statements land in
// unreachable, but well-formed, IR.
func (lz *Lowerer) lowerBreak(n *ast.Break) error {
	target, ok := lz.breakTargets[n]
	if !ok {
		return report.NewCodeGenError(n.Pos(), "break used outside of a loop")
	}
	lz.block.NewBr(target)
	lz.block = lz.newBlock("afterBreak")
	return nil
}

// lowerExit returns using the exit sink installed by the enclosing body --
// status 0 in the main block, void in a procedure, the return slot's
// current value in a function -- then opens a fresh block for the same
// reason lowerBreak does.
func (lz *Lowerer) lowerExit(n *ast.Exit) error {
	if len(lz.exitStack) == 0 {
		return report.NewCodeGenError(n.Pos(), "exit used outside of a block")
	}
	sink := lz.exitStack[len(lz.exitStack)-1]

	switch sink.kind {
	case exitMain:
		lz.block.NewRet(constant.NewInt(types.I32, 0))
	case exitProc:
		lz.block.NewRet(nil)
	case exitFunc:
		lz.block.NewRet(lz.block.NewLoad(sink.retType, sink.retSlot))
	}

	lz.block = lz.newBlock("afterExit")
	return nil
}
