package lower

import (
	"milac/ast"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// llvmType maps an AST type to its LLVM representation: integer -> i32,
// real -> double, array[lo..hi] of T -> a fixed-length array of hi-lo+1
// elements of T's representation.
func llvmType(t ast.Type) types.Type {
	switch tt := t.(type) {
	case ast.Primitive:
		if tt.Kind == ast.Real {
			return types.Double
		}
		return types.I32
	case ast.Array:
		return types.NewArray(uint64(tt.Hi-tt.Lo+1), llvmType(tt.Elem))
	}
	return types.Void
}

// zeroValue returns t's default initializer: 0 for integer, 0.0 for real,
// an aggregate zero for arrays.
func zeroValue(t ast.Type) constant.Constant {
	switch tt := t.(type) {
	case ast.Primitive:
		if tt.Kind == ast.Real {
			return constant.NewFloat(types.Double, 0)
		}
		return constant.NewInt(types.I32, 0)
	case ast.Array:
		return constant.NewZeroInitializer(llvmType(tt))
	}
	return constant.NewInt(types.I32, 0)
}

// isReal reports whether t is the primitive real type. Array types never
// appear as an operand of an arithmetic or comparison operator, so this is
// only ever asked of Primitive-typed values in practice.
func isReal(t ast.Type) bool {
	p, ok := t.(ast.Primitive)
	return ok && p.Kind == ast.Real
}

// voidOrLLVM returns t's LLVM representation, or void if t is nil -- the
// procedure case, where there is no declared return type.
func voidOrLLVM(t *ast.Primitive) types.Type {
	if t == nil {
		return types.Void
	}
	return llvmType(*t)
}
