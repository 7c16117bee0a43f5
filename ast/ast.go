// Package ast defines the typed abstract syntax tree produced by the parser.
// It is a closed sum type grouped by category -- types, expressions,
// statements, and the program root -- distinguished by a type switch at each
// traversal site rather than by virtual dispatch.
package ast

import "milac/report"

// Node is implemented by every AST node; it exposes the source position of
// the node's first token, used for diagnostics.
type Node interface {
	Pos() report.Position
}

// Base carries the source position shared by every node and is embedded by
// every concrete node type.
type Base struct {
	P report.Position
}

func (b Base) Pos() report.Position { return b.P }

// At constructs a Base from a position; a small convenience for node
// literals built outside this package (the parser, tests).
func At(pos report.Position) Base {
	return Base{P: pos}
}
