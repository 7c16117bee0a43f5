package lower

import (
	"milac/ast"
	"milac/report"
	"milac/symbols"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// declareStorage allocates storage for a scalar or array variable -- a
// module global if the table is currently at global scope (i.e. this
// declaration appears directly in the program's main block), a stack
// allocation in the enclosing function's entry block otherwise -- and
// defines the corresponding symbol.
func (lz *Lowerer) declareStorage(name string, t ast.Type, pos report.Position) error {
	var storage value.Value
	var kind symbols.StorageKind

	if lz.syms.AtGlobalScope() {
		storage = lz.mod.NewGlobalDef(name, zeroValue(t))
		kind = symbols.Global
	} else {
		alloca := lz.block.NewAlloca(llvmType(t))
		lz.block.NewStore(zeroValue(t), alloca)
		storage = alloca
		kind = symbols.Local
	}

	sym := &symbols.Symbol{Name: name, Type: t, Storage: kind, Value: storage}
	if !lz.syms.Define(sym) {
		return report.NewCodeGenError(pos, "%q is already declared in this scope", name)
	}
	return nil
}

func (lz *Lowerer) lowerVarDecl(n *ast.VarDecl) error {
	return lz.declareStorage(n.Name, n.Type, n.Pos())
}

// lowerArrayDecl enforces the declaration-time size bounds the grammar
// cannot: lo <= hi is already guaranteed by ast.NewArray, but hi-lo <= 1000
// and hi != lo (size >= 2) are specific to how arrays are realized as fixed
// IR aggregates.
func (lz *Lowerer) lowerArrayDecl(n *ast.ArrayDecl) error {
	arr := n.Type
	if arr.Lo > arr.Hi {
		return report.NewCodeGenError(n.Pos(), "array %q has lo > hi", n.Name)
	}
	if arr.Hi == arr.Lo {
		return report.NewCodeGenError(n.Pos(), "array %q must have at least 2 elements", n.Name)
	}
	if int64(arr.Hi)-int64(arr.Lo) > 1000 {
		return report.NewCodeGenError(n.Pos(), "array %q is too large (hi-lo must be <= 1000)", n.Name)
	}
	return lz.declareStorage(n.Name, arr, n.Pos())
}

// lowerConstDef lowers the constant's initializer expression, allocates
// storage for it exactly as a variable of the same inferred type would get,
// then stores the computed value into it -- the "runtime store of the
// evaluated expression" the storage model describes, which for a global
// constant happens in main's entry block before the rest of main's body.
func (lz *Lowerer) lowerConstDef(n *ast.ConstDef) error {
	val, typ, err := lz.lowerExpr(n.Expr)
	if err != nil {
		return err
	}
	n.InferredType = typ

	var storage value.Value
	var kind symbols.StorageKind
	if lz.syms.AtGlobalScope() {
		storage = lz.mod.NewGlobalDef(n.Name, zeroValue(typ))
		kind = symbols.Global
	} else {
		storage = lz.block.NewAlloca(llvmType(typ))
		kind = symbols.Local
	}
	lz.block.NewStore(val, storage)

	sym := &symbols.Symbol{Name: n.Name, Type: typ, Storage: kind, Immutable: true, Value: storage}
	if !lz.syms.Define(sym) {
		return report.NewCodeGenError(n.Pos(), "%q is already declared in this scope", n.Name)
	}
	return nil
}

func (lz *Lowerer) lowerProcDecl(n *ast.ProcDecl) error {
	return lz.declareOrDefine(n.Name, n.Params, nil, n.Body, n.Forward, n.Pos())
}

func (lz *Lowerer) lowerFunDecl(n *ast.FunDecl) error {
	retType := n.RetType
	return lz.declareOrDefine(n.Name, n.Params, &retType, n.Body, n.Forward, n.Pos())
}

// declareOrDefine implements the first-encounter / forward / matching-body
// rules of Sec 4.6: a first mention -- forward or not -- creates the
// function stub; a second mention must match the first's signature exactly
// and must supply the one and only body.
func (lz *Lowerer) declareOrDefine(
	name string, params []*ast.VarDecl, retType *ast.Primitive, body *ast.Block, forward bool, pos report.Position,
) error {
	paramTypes := make([]ast.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	newSig := procSig{params: paramTypes, retType: retType}

	existingSig, exists := lz.declaredSig[name]
	if exists {
		if !sigsMatch(existingSig, newSig) {
			return report.NewCodeGenError(pos, "declaration of %q does not match its forward declaration", name)
		}
		if forward {
			return report.NewCodeGenError(pos, "%q is already forward-declared", name)
		}
		if lz.hasBody[name] {
			return report.NewCodeGenError(pos, "%q is already defined", name)
		}
		return lz.lowerBody(lz.declaredFns[name], name, params, retType, body)
	}

	var llvmParams []*ir.Param
	for _, p := range params {
		llvmParams = append(llvmParams, ir.NewParam(p.Name, llvmType(p.Type)))
	}
	retLLVM := voidOrLLVM(retType)
	fn := lz.mod.NewFunc(name, retLLVM, llvmParams...)

	lz.declaredFns[name] = fn
	lz.declaredSig[name] = newSig
	lz.hasBody[name] = false

	if forward {
		return nil
	}
	return lz.lowerBody(fn, name, params, retType, body)
}

// lowerBody lowers a procedure/function's body into fn, temporarily
// redirecting the insertion point and symbol table away from whatever
// enclosing body (always the program's main block; this grammar does not
// nest procedure declarations) is currently being lowered, and restoring
// both on return.
func (lz *Lowerer) lowerBody(fn *ir.Func, name string, params []*ast.VarDecl, retType *ast.Primitive, body *ast.Block) error {
	savedFn, savedBlock := lz.fn, lz.block
	restore := func() {
		lz.fn, lz.block = savedFn, savedBlock
	}

	lz.fn = fn
	lz.block = fn.NewBlock("entry")
	lz.syms.PushScope()

	for i, p := range params {
		alloca := lz.block.NewAlloca(llvmType(p.Type))
		lz.block.NewStore(fn.Params[i], alloca)
		sym := &symbols.Symbol{Name: p.Name, Type: p.Type, Storage: symbols.Local, Value: value.Value(alloca)}
		if !lz.syms.Define(sym) {
			lz.syms.PopScope()
			restore()
			return report.NewCodeGenError(p.Pos(), "duplicate parameter name %q", p.Name)
		}
	}

	var sink exitSink
	if retType != nil {
		retSlot := lz.block.NewAlloca(llvmType(*retType))
		lz.block.NewStore(zeroValue(*retType), retSlot)
		sym := &symbols.Symbol{Name: name, Type: ast.Type(*retType), Storage: symbols.Local, Value: value.Value(retSlot)}
		if !lz.syms.Define(sym) {
			lz.syms.PopScope()
			restore()
			return report.NewCodeGenError(body.Pos(), "parameter of %q conflicts with the function's own name", name)
		}
		sink = exitSink{kind: exitFunc, retSlot: retSlot, retType: llvmType(*retType)}
	} else {
		sink = exitSink{kind: exitProc}
	}
	lz.exitStack = append(lz.exitStack, sink)

	for _, s := range body.Stmts {
		if err := lz.lowerStmt(s); err != nil {
			lz.exitStack = lz.exitStack[:len(lz.exitStack)-1]
			lz.syms.PopScope()
			restore()
			return err
		}
	}

	if retType != nil {
		retSym := lz.syms.Lookup(name)
		loaded := lz.block.NewLoad(llvmType(*retType), retSym.Value.(value.Value))
		lz.block.NewRet(loaded)
	} else {
		lz.block.NewRet(nil)
	}

	lz.exitStack = lz.exitStack[:len(lz.exitStack)-1]
	lz.syms.PopScope()
	lz.hasBody[name] = true
	restore()
	return nil
}
