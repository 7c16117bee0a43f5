package ast

// Program is the root node of the tree: a named unit with a single top-level
// block. Name is carried through to the emitted IR module's identifier.
type Program struct {
	Base
	Name  string
	Block *Block
}
