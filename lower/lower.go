// Package lower implements the IR-lowering engine: it walks a parsed
// *ast.Program and emits a textual LLVM IR module, built with
// github.com/llir/llvm, suitable for an external IR-to-assembly compiler.
package lower

import (
	"fmt"

	"milac/ast"
	"milac/symbols"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// exitKind selects what an Exit statement returns, per the enclosing body.
type exitKind int

const (
	exitMain exitKind = iota
	exitProc
	exitFunc
)

// exitSink is the "load current return value" description installed as the
// active exit target for the body currently being lowered: the closure
// described in the design notes is just this plain struct, read by Exit when
// it is reached.
type exitSink struct {
	kind    exitKind
	retSlot value.Value // the alloca holding the function's return value
	retType types.Type
}

// procSig records a declared procedure/function's parameter and return
// types, used to verify that a later defining declaration (or forward
// declaration) matches exactly.
type procSig struct {
	params  []ast.Type
	retType *ast.Primitive
}

// sigsMatch reports whether two signatures agree on parameter types and
// return type -- used to validate that a body definition matches the
// forward declaration it completes.
func sigsMatch(a, b procSig) bool {
	if len(a.params) != len(b.params) {
		return false
	}
	for i := range a.params {
		if a.params[i] != b.params[i] {
			return false
		}
	}
	if (a.retType == nil) != (b.retType == nil) {
		return false
	}
	return a.retType == nil || *a.retType == *b.retType
}

// Lowerer owns the module under construction, the current symbol table, the
// current basic-block insertion point, and the bookkeeping needed to wire
// Break and Exit without back-pointers into the AST.
type Lowerer struct {
	mod *ir.Module

	syms  *symbols.Table
	fn    *ir.Func
	block *ir.Block

	runtimeFns map[string]*ir.Func

	declaredFns map[string]*ir.Func
	declaredSig map[string]procSig
	hasBody     map[string]bool

	breakTargets map[*ast.Break]*ir.Block
	exitStack    []exitSink

	blockCounter int
	strCounter   int
}

// Lower runs the full pipeline over prog and returns the module's textual
// IR. It is the sole entry point into this package.
func Lower(prog *ast.Program) (string, error) {
	lz := &Lowerer{
		mod:          ir.NewModule(),
		syms:         symbols.New(),
		runtimeFns:   map[string]*ir.Func{},
		declaredFns:  map[string]*ir.Func{},
		declaredSig:  map[string]procSig{},
		hasBody:      map[string]bool{},
		breakTargets: map[*ast.Break]*ir.Block{},
	}
	lz.mod.SourceFilename = prog.Name

	mainFn := lz.mod.NewFunc("main", types.I32)
	entry := mainFn.NewBlock("entry")
	lz.fn = mainFn
	lz.block = entry
	lz.exitStack = append(lz.exitStack, exitSink{kind: exitMain})

	for _, s := range prog.Block.Stmts {
		if err := lz.lowerStmt(s); err != nil {
			return "", err
		}
	}

	lz.block.NewRet(constant.NewInt(types.I32, 0))

	return lz.mod.String(), nil
}

// newBlock appends a fresh, uniquely-named basic block to the function
// currently being lowered.
func (lz *Lowerer) newBlock(prefix string) *ir.Block {
	lz.blockCounter++
	return lz.fn.NewBlock(fmt.Sprintf("%s%d", prefix, lz.blockCounter))
}

// runtimeFunc returns the declaration for a C runtime symbol, declaring it
// in the module on first use.
func (lz *Lowerer) runtimeFunc(name string, retType types.Type, paramTypes ...types.Type) *ir.Func {
	if fn, ok := lz.runtimeFns[name]; ok {
		return fn
	}
	var params []*ir.Param
	for _, t := range paramTypes {
		params = append(params, ir.NewParam("", t))
	}
	fn := lz.mod.NewFunc(name, retType, params...)
	lz.runtimeFns[name] = fn
	return fn
}
