package lower

import (
	"milac/ast"
	"milac/report"

	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lowerCall implements the predefined call dispatcher: a fixed chain of
// name matches tried in order before falling back to a user-declared
// procedure or function. It returns a nil Type for calls that produce no
// value (procedures), which the caller rejects if used in expression
// position.
func (lz *Lowerer) lowerCall(name string, args []ast.Expr, pos report.Position) (value.Value, ast.Type, error) {
	switch name {
	case "write":
		return lz.lowerWriteCall(args, pos, "write_int", "write_double")
	case "writeln":
		return lz.lowerWriteCall(args, pos, "writeln_int", "writeln_double")
	case "readln":
		return lz.lowerReadlnCall(args, pos)
	case "to_integer":
		return lz.lowerToInteger(args, pos)
	case "to_real":
		return lz.lowerToReal(args, pos)
	}
	return lz.lowerUserCall(name, args, pos)
}

// scalarLLVMAndName resolves t to its LLVM representation and picks
// intName or doubleName depending on whether t is integer or real;
// arrays are rejected since none of the predefined calls accept them.
func scalarLLVMAndName(t ast.Type, pos report.Position, intName, doubleName string) (types.Type, string, error) {
	p, ok := t.(ast.Primitive)
	if !ok {
		return nil, "", report.NewCodeGenError(pos, "expected a scalar value, got %s", t)
	}
	if p.Kind == ast.Real {
		return types.Double, doubleName, nil
	}
	return types.I32, intName, nil
}

func (lz *Lowerer) lowerWriteCall(args []ast.Expr, pos report.Position, intName, doubleName string) (value.Value, ast.Type, error) {
	if len(args) != 1 {
		return nil, nil, report.NewCodeGenError(pos, "%s expects exactly 1 argument", intName)
	}
	val, typ, err := lz.lowerExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	llvmT, fnName, err := scalarLLVMAndName(typ, args[0].Pos(), intName, doubleName)
	if err != nil {
		return nil, nil, err
	}
	fn := lz.runtimeFunc(fnName, types.I32, llvmT)
	res := lz.block.NewCall(fn, val)
	return res, ast.Primitive{Kind: ast.Integer}, nil
}

// lowerReadlnCall requires its single argument to resolve to a storage
// location -- a VarRef or ArrayRef -- and dispatches on that location's
// element type.
func (lz *Lowerer) lowerReadlnCall(args []ast.Expr, pos report.Position) (value.Value, ast.Type, error) {
	if len(args) != 1 {
		return nil, nil, report.NewCodeGenError(pos, "readln expects exactly 1 argument")
	}
	ptr, elemType, immutable, err := lz.resolveLValue(args[0])
	if err != nil {
		return nil, nil, report.NewCodeGenError(args[0].Pos(), "readln argument must be a variable")
	}
	if immutable {
		return nil, nil, report.NewCodeGenError(args[0].Pos(), "cannot read into a constant")
	}
	llvmT, fnName, err := scalarLLVMAndName(elemType, args[0].Pos(), "readln_int", "readln_double")
	if err != nil {
		return nil, nil, err
	}
	fn := lz.runtimeFunc(fnName, types.I32, types.NewPointer(llvmT))
	res := lz.block.NewCall(fn, ptr)
	return res, ast.Primitive{Kind: ast.Integer}, nil
}

// lowerToInteger converts a real operand via FP-to-signed-int; an integer
// operand is returned unchanged.
func (lz *Lowerer) lowerToInteger(args []ast.Expr, pos report.Position) (value.Value, ast.Type, error) {
	if len(args) != 1 {
		return nil, nil, report.NewCodeGenError(pos, "to_integer expects exactly 1 argument")
	}
	val, typ, err := lz.lowerExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	if isReal(typ) {
		return lz.block.NewFPToSI(val, types.I32), ast.Primitive{Kind: ast.Integer}, nil
	}
	return val, ast.Primitive{Kind: ast.Integer}, nil
}

// lowerToReal converts an integer operand via signed-int-to-FP; a real
// operand is returned unchanged.
func (lz *Lowerer) lowerToReal(args []ast.Expr, pos report.Position) (value.Value, ast.Type, error) {
	if len(args) != 1 {
		return nil, nil, report.NewCodeGenError(pos, "to_real expects exactly 1 argument")
	}
	val, typ, err := lz.lowerExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	if !isReal(typ) {
		return lz.block.NewSIToFP(val, types.Double), ast.Primitive{Kind: ast.Real}, nil
	}
	return val, ast.Primitive{Kind: ast.Real}, nil
}

// lowerUserCall is the fallback: name must name a previously declared
// procedure or function. Parameters accept the same implicit int->real
// conversion assignments do; passing a real where an integer parameter is
// declared is rejected, mirroring assignment's conversion rule.
func (lz *Lowerer) lowerUserCall(name string, args []ast.Expr, pos report.Position) (value.Value, ast.Type, error) {
	fn, ok := lz.declaredFns[name]
	if !ok {
		return nil, nil, report.NewCodeGenError(pos, "undefined procedure or function %q", name)
	}
	sig := lz.declaredSig[name]
	if len(args) != len(sig.params) {
		return nil, nil, report.NewCodeGenError(pos, "%q expects %d argument(s), got %d", name, len(sig.params), len(args))
	}

	llArgs := make([]value.Value, len(args))
	for i, a := range args {
		val, typ, err := lz.lowerExpr(a)
		if err != nil {
			return nil, nil, err
		}
		paramType := sig.params[i]
		if isReal(paramType) && !isReal(typ) {
			val = lz.promoteToReal(val, typ)
		} else if !isReal(paramType) && isReal(typ) {
			return nil, nil, report.NewCodeGenError(a.Pos(), "cannot pass a real value where %q expects an integer", name)
		}
		llArgs[i] = val
	}

	call := lz.block.NewCall(fn, llArgs...)
	if sig.retType == nil {
		return call, nil, nil
	}
	return call, ast.Type(*sig.retType), nil
}
