package ast

// Node is the base interface for all AST nodes.
type Node interface {
	Positioner
	Hash() uint64
}

// Expr is the interface for all surface expressions.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// ReplNode is implemented by the forms only produced by the REPL host.
// They are elaborated by a collaborator rather than by the inference rules themselves.
type ReplNode interface {
	Expr
	replNode()
}

// TypeAnn is a type written in the source, as opposed to one produced by inference.
type TypeAnn interface {
	Node
	typeAnnNode()
}

// Declaration is a named top-level expression, checked independently of its siblings.
type Declaration struct {
	Range
	Name string
	// Effect lists the capabilities the declaration may perform; empty means pure.
	Effect []string
	// Expect is an optional annotation the declaration is checked against.
	Expect TypeAnn
	Value  Expr
}
