package lower

import (
	"milac/ast"
	"milac/report"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lowerExpr lowers e bottom-up to an SSA-form value, returning alongside it
// the AST type that value represents (needed by the caller for implicit
// conversions and operator selection).
func (lz *Lowerer) lowerExpr(e ast.Expr) (value.Value, ast.Type, error) {
	switch n := e.(type) {
	case *ast.Literal:
		if n.IsReal {
			return constant.NewFloat(types.Double, n.RealVal), ast.Primitive{Kind: ast.Real}, nil
		}
		return constant.NewInt(types.I32, int64(n.IntVal)), ast.Primitive{Kind: ast.Integer}, nil

	case *ast.VarRef:
		sym := lz.syms.Lookup(n.Name)
		if sym == nil {
			return nil, nil, report.NewCodeGenError(n.Pos(), "undefined name %q", n.Name)
		}
		ptr := sym.Value.(value.Value)
		return lz.block.NewLoad(llvmType(sym.Type), ptr), sym.Type, nil

	case *ast.ArrayRef:
		ptr, elemType, err := lz.arrayElemPtr(n)
		if err != nil {
			return nil, nil, err
		}
		return lz.block.NewLoad(llvmType(elemType), ptr), elemType, nil

	case *ast.UnaryOp:
		return lz.lowerUnaryOp(n)

	case *ast.BinOp:
		return lz.lowerBinOp(n)

	case *ast.Call:
		v, resultType, err := lz.lowerCall(n.Name, n.Args, n.Pos())
		if err != nil {
			return nil, nil, err
		}
		if resultType == nil {
			return nil, nil, report.NewCodeGenError(n.Pos(), "%q does not return a value", n.Name)
		}
		return v, resultType, nil
	}

	return nil, nil, report.NewCodeGenError(e.Pos(), "unsupported expression")
}

// arrayElemPtr resolves an ArrayRef to the address of its element, emitting
// the bounds check along the way.
func (lz *Lowerer) arrayElemPtr(n *ast.ArrayRef) (value.Value, ast.Type, error) {
	sym := lz.syms.Lookup(n.Name)
	if sym == nil {
		return nil, nil, report.NewCodeGenError(n.Pos(), "undefined name %q", n.Name)
	}
	arr, ok := sym.Type.(ast.Array)
	if !ok {
		return nil, nil, report.NewCodeGenError(n.Pos(), "%q is not an array", n.Name)
	}

	idx, idxType, err := lz.lowerExpr(n.Index)
	if err != nil {
		return nil, nil, err
	}
	if isReal(idxType) {
		return nil, nil, report.NewCodeGenError(n.Index.Pos(), "array index must be an integer")
	}

	lz.emitBoundsCheck(n.Name, n.Pos(), idx, arr.Lo, arr.Hi)

	effIdx := lz.block.NewSub(idx, constant.NewInt(types.I32, int64(arr.Lo)))
	base := sym.Value.(value.Value)
	gep := lz.block.NewGetElementPtr(llvmType(arr), base, constant.NewInt(types.I32, 0), effIdx)
	return gep, arr.Elem, nil
}

// emitBoundsCheck implements the check/throw/continue block sequence: it
// leaves lz.block positioned at the continue block on return.
func (lz *Lowerer) emitBoundsCheck(name string, pos report.Position, idx value.Value, lo, hi int32) {
	throwBlock := lz.newBlock("oob.throw")
	contBlock := lz.newBlock("oob.cont")

	tooLow := lz.block.NewICmp(enum.IPredSLT, idx, constant.NewInt(types.I32, int64(lo)))
	tooHigh := lz.block.NewICmp(enum.IPredSGT, idx, constant.NewInt(types.I32, int64(hi)))
	ood := lz.block.NewOr(tooLow, tooHigh)
	lz.block.NewCondBr(ood, throwBlock, contBlock)

	errFn := lz.runtimeFunc("error", types.I32, types.NewPointer(types.I8))
	msg := lz.globalCString("Runtime error: Array '" + name + "' - the index is out of bounds.\n")
	throwBlock.NewCall(errFn, msg)
	throwBlock.NewUnreachable()

	lz.block = contBlock
	_ = pos
}

// globalCString emits an unnamed, immutable global holding s's bytes plus a
// trailing NUL and returns a pointer to its first byte.
func (lz *Lowerer) globalCString(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	lz.strCounter++
	g := lz.mod.NewGlobalDef("", data)
	g.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(g.ContentType, g, zero, zero)
}

func (lz *Lowerer) lowerUnaryOp(n *ast.UnaryOp) (value.Value, ast.Type, error) {
	x, xt, err := lz.lowerExpr(n.X)
	if err != nil {
		return nil, nil, err
	}

	switch n.Op {
	case ast.OpNeg:
		if isReal(xt) {
			return lz.block.NewFNeg(x), xt, nil
		}
		return lz.block.NewSub(constant.NewInt(types.I32, 0), x), xt, nil

	case ast.OpNot:
		if isReal(xt) {
			return nil, nil, report.NewCodeGenError(n.Pos(), "operator not is not defined on real operands")
		}
		return lz.block.NewXor(x, constant.NewInt(types.I32, 1)), xt, nil
	}

	return nil, nil, report.NewCodeGenError(n.Pos(), "unsupported unary operator")
}

// lowerBinOp implements the operator semantics table: integer arithmetic
// stays in i32; any real operand promotes both sides to double via signed
// int -> FP conversion. Comparisons lower to icmp/fcmp and are immediately
// widened back to i32, so every Mila value -- including the boolean result
// of a comparison -- is uniformly represented as integer or real at rest;
// branch sites narrow back to i1 with toBoolCond.
func (lz *Lowerer) lowerBinOp(n *ast.BinOp) (value.Value, ast.Type, error) {
	lhs, lt, err := lz.lowerExpr(n.Lhs)
	if err != nil {
		return nil, nil, err
	}
	rhs, rt, err := lz.lowerExpr(n.Rhs)
	if err != nil {
		return nil, nil, err
	}

	real := isReal(lt) || isReal(rt)

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpDivKw, ast.OpMod:
		if real {
			lhs, rhs = lz.promoteToReal(lhs, lt), lz.promoteToReal(rhs, rt)
			return lz.lowerFloatArith(n.Op, lhs, rhs), ast.Primitive{Kind: ast.Real}, nil
		}
		return lz.lowerIntArith(n.Op, lhs, rhs), ast.Primitive{Kind: ast.Integer}, nil

	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		var cmp value.Value
		if real {
			lhs, rhs = lz.promoteToReal(lhs, lt), lz.promoteToReal(rhs, rt)
			cmp = lz.block.NewFCmp(fcmpPred(n.Op), lhs, rhs)
		} else {
			cmp = lz.block.NewICmp(icmpPred(n.Op), lhs, rhs)
		}
		return lz.block.NewZExt(cmp, types.I32), ast.Primitive{Kind: ast.Integer}, nil

	case ast.OpAnd, ast.OpOr:
		if real {
			return nil, nil, report.NewCodeGenError(n.Pos(), "operator %s is not defined on real operands", n.Op)
		}
		if n.Op == ast.OpAnd {
			return lz.block.NewAnd(lhs, rhs), ast.Primitive{Kind: ast.Integer}, nil
		}
		return lz.block.NewOr(lhs, rhs), ast.Primitive{Kind: ast.Integer}, nil
	}

	return nil, nil, report.NewCodeGenError(n.Pos(), "unsupported operator %s", n.Op)
}

func (lz *Lowerer) promoteToReal(v value.Value, t ast.Type) value.Value {
	if isReal(t) {
		return v
	}
	return lz.block.NewSIToFP(v, types.Double)
}

func (lz *Lowerer) lowerIntArith(op ast.Operator, lhs, rhs value.Value) value.Value {
	switch op {
	case ast.OpAdd:
		return lz.block.NewAdd(lhs, rhs)
	case ast.OpSub:
		return lz.block.NewSub(lhs, rhs)
	case ast.OpMul:
		return lz.block.NewMul(lhs, rhs)
	case ast.OpDiv, ast.OpDivKw:
		return lz.block.NewSDiv(lhs, rhs)
	case ast.OpMod:
		return lz.block.NewSRem(lhs, rhs)
	}
	panic("unreachable")
}

func (lz *Lowerer) lowerFloatArith(op ast.Operator, lhs, rhs value.Value) value.Value {
	switch op {
	case ast.OpAdd:
		return lz.block.NewFAdd(lhs, rhs)
	case ast.OpSub:
		return lz.block.NewFSub(lhs, rhs)
	case ast.OpMul:
		return lz.block.NewFMul(lhs, rhs)
	case ast.OpDiv, ast.OpDivKw:
		return lz.block.NewFDiv(lhs, rhs)
	case ast.OpMod:
		return lz.block.NewFRem(lhs, rhs)
	}
	panic("unreachable")
}

func icmpPred(op ast.Operator) enum.IPred {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ
	case ast.OpNeq:
		return enum.IPredNE
	case ast.OpLt:
		return enum.IPredSLT
	case ast.OpLe:
		return enum.IPredSLE
	case ast.OpGt:
		return enum.IPredSGT
	case ast.OpGe:
		return enum.IPredSGE
	}
	panic("unreachable")
}

func fcmpPred(op ast.Operator) enum.FPred {
	switch op {
	case ast.OpEq:
		return enum.FPredOEQ
	case ast.OpNeq:
		return enum.FPredONE
	case ast.OpLt:
		return enum.FPredOLT
	case ast.OpLe:
		return enum.FPredOLE
	case ast.OpGt:
		return enum.FPredOGT
	case ast.OpGe:
		return enum.FPredOGE
	}
	panic("unreachable")
}

// toBoolCond narrows an integer-encoded boolean (0 or 1, the uniform
// representation every comparison and logical operator produces) back to an
// i1 for use as a branch condition. t is the AST type lowerExpr reported
// alongside v; a real-typed condition is rejected rather than compared
// against an i32 zero, which would emit ill-typed IR.
func (lz *Lowerer) toBoolCond(v value.Value, t ast.Type, pos report.Position) (value.Value, error) {
	if isReal(t) {
		return nil, report.NewCodeGenError(pos, "condition must be an integer (boolean) expression, got real")
	}
	return lz.block.NewICmp(enum.IPredNE, v, constant.NewInt(types.I32, 0)), nil
}
