package ast

import "milac/report"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Operator enumerates the unary and binary operators the grammar accepts.
// DIV is kept distinct from Div in surface syntax only: DIV is an alias of /
// at lowering time, so both surface spellings lower the same way once past
// the parser.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv // '/'
	OpDivKw
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpNeg // unary '-'
	OpNot // unary NOT
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv, OpDivKw:
		return "/"
	case OpMod:
		return "mod"
	case OpEq:
		return "="
	case OpNeq:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNeg:
		return "-"
	case OpNot:
		return "not"
	}
	return "?"
}

// Literal is an integer or real constant.
type Literal struct {
	Base
	IsReal  bool
	IntVal  int32
	RealVal float64
}

func (*Literal) exprNode() {}

// VarRef names a scalar variable, constant, or parameterless function result.
type VarRef struct {
	Base
	Name string
}

func (*VarRef) exprNode() {}

// ArrayRef indexes into an array variable.
type ArrayRef struct {
	Base
	Name  string
	Index Expr
}

func (*ArrayRef) exprNode() {}

// UnaryOp applies a prefix operator to a single operand.
type UnaryOp struct {
	Base
	Op Operator
	X  Expr
}

func (*UnaryOp) exprNode() {}

// BinOp applies an infix operator to two operands. All binary operators are
// left-associative and are built by repeated folding of a pending LHS.
type BinOp struct {
	Base
	Op       Operator
	Lhs, Rhs Expr
}

func (*BinOp) exprNode() {}

// Call is a user or predefined function invocation used in expression
// position.
type Call struct {
	Base
	Name string
	Args []Expr
}

func (*Call) exprNode() {}

// NewLiteralInt constructs an integer literal at pos.
func NewLiteralInt(pos report.Position, v int32) *Literal {
	return &Literal{Base: Base{pos}, IntVal: v}
}

// NewLiteralReal constructs a real literal at pos.
func NewLiteralReal(pos report.Position, v float64) *Literal {
	return &Literal{Base: Base{pos}, IsReal: true, RealVal: v}
}
