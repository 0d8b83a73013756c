package ir

import (
	"fmt"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/types"
)

// Ident is a core identifier: the source name plus an ID unique within one inference run,
// so that shadowed source names stay distinct after elaboration.
type Ident struct {
	Name string
	ID   uint64
}

func (i Ident) String() string { return fmt.Sprintf("%s_%d", i.Name, i.ID) }

// Expr is an elaborated, type-annotated expression.
//
// Every node carries the Range of the surface expression it was produced from.
// Nodes are never mutated once constructed, although the unification variables
// inside their types may still be resolved later on.
type Expr interface {
	ast.Positioner
	exprNode()
}

var (
	_ Expr = (*Unit)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*PureFunc)(nil)
	_ Expr = (*EffFunc)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Handle)(nil)
	_ Expr = (*ReplExpr)(nil)
	_ Expr = (*ReplSeq)(nil)
)

type Unit struct {
	ast.Range
}

// Var is a variable occurrence, annotated with the instantiated type of its binding.
type Var struct {
	ast.Range
	Ident Ident
	Type  types.Type
}

// PureFunc is a function whose body performs no effect.
type PureFunc struct {
	ast.Range
	Param     Ident
	ParamType types.Type
	Body      Expr
}

// EffFunc is a function whose body may perform the effects in Effect when called.
type EffFunc struct {
	ast.Range
	Param     Ident
	ParamType types.Type
	Effect    *types.Row
	Body      Expr
}

type App struct {
	ast.Range
	Func Expr
	Arg  Expr
	// Type is the result type of the application
	Type types.Type
}

// Let binds Ident to Value within Body. Scheme is monomorphic unless Value was pure.
type Let struct {
	ast.Range
	Ident  Ident
	Scheme types.Scheme
	Value  Expr
	Body   Expr
}

// Handle runs Body with Clause installed as the handler of the fresh capability Cap,
// whose operation is bound to Ident.
type Handle struct {
	ast.Range
	Cap          *types.Capability
	Ident        Ident
	Clause       *HandlerClause
	Body         Expr
	ResultType   types.Type
	ResultEffect *types.Row
}

type HandlerClause struct {
	ast.Range
	Op     Ident
	Resume Ident
	// OpType is the type callers see when invoking the operation
	OpType types.Type
	Body   Expr
}

type ReplExpr struct {
	ast.Range
	Value Expr
	Type  types.Type
}

type ReplSeq struct {
	ast.Range
	First Expr
	Next  Expr
}

func (*Unit) exprNode()     {}
func (*Var) exprNode()      {}
func (*PureFunc) exprNode() {}
func (*EffFunc) exprNode()  {}
func (*App) exprNode()      {}
func (*Let) exprNode()      {}
func (*Handle) exprNode()   {}
func (*ReplExpr) exprNode() {}
func (*ReplSeq) exprNode()  {}

// Walk calls visit on e and, while visit returns true, on every sub-expression of e in source order.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch e := e.(type) {
	case *PureFunc:
		Walk(e.Body, visit)
	case *EffFunc:
		Walk(e.Body, visit)
	case *App:
		Walk(e.Func, visit)
		Walk(e.Arg, visit)
	case *Let:
		Walk(e.Value, visit)
		Walk(e.Body, visit)
	case *Handle:
		if e.Clause != nil {
			Walk(e.Clause.Body, visit)
		}
		Walk(e.Body, visit)
	case *ReplExpr:
		Walk(e.Value, visit)
	case *ReplSeq:
		Walk(e.First, visit)
		Walk(e.Next, visit)
	}
}
