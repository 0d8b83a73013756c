package ast

import (
	"encoding/binary"
	"hash/fnv"
)

var (
	_ Expr = (*Unit)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*PolyLet)(nil)
	_ Expr = (*MonoLet)(nil)
	_ Expr = (*Handle)(nil)

	_ ReplNode = (*ReplExpr)(nil)
	_ ReplNode = (*ReplSeq)(nil)
)

// hashNode hashes a node from its syntax name, the identifiers it binds, its range and its children.
func hashNode(name string, idents []string, r Range, children ...Node) uint64 {
	h := fnv.New64a()
	arr := []byte(name)
	for _, ident := range idents {
		_, _ = h.Write([]byte(ident))
	}
	arr = binary.LittleEndian.AppendUint64(arr, r.Hash())
	for _, child := range children {
		if child != nil {
			arr = binary.LittleEndian.AppendUint64(arr, child.Hash())
		}
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Unit is the unit literal `()`.
type Unit struct {
	Range
}

func (e *Unit) exprNode()    {}
func (e *Unit) Hash() uint64 { return hashNode("Unit", nil, e.Range) }

// Var is a reference to a variable.
type Var struct {
	Range
	Name string
}

func (e *Var) exprNode()    {}
func (e *Var) Hash() uint64 { return hashNode("Var", []string{e.Name}, e.Range) }

// Func is a function literal `fn(Param) => Body`.
type Func struct {
	Range
	Param string
	Body  Expr
}

func (e *Func) exprNode()    {}
func (e *Func) Hash() uint64 { return hashNode("Func", []string{e.Param}, e.Range, e.Body) }

// App applies Func to Arg.
type App struct {
	Range
	Func Expr
	Arg  Expr
}

func (e *App) exprNode()    {}
func (e *App) Hash() uint64 { return hashNode("App", nil, e.Range, e.Func, e.Arg) }

// PolyLet is `let Name = Value in Body` where Value is syntactically pure,
// so the type of Name is generalized.
type PolyLet struct {
	Range
	Name  string
	Value Expr
	Body  Expr
}

func (e *PolyLet) exprNode()    {}
func (e *PolyLet) Hash() uint64 { return hashNode("PolyLet", []string{e.Name}, e.Range, e.Value, e.Body) }

// MonoLet is `let Name = Value in Body` where Value may perform effects,
// so the type of Name is never generalized.
type MonoLet struct {
	Range
	Name  string
	Value Expr
	Body  Expr
}

func (e *MonoLet) exprNode()    {}
func (e *MonoLet) Hash() uint64 { return hashNode("MonoLet", []string{e.Name}, e.Range, e.Value, e.Body) }

// Handle installs Clause as the handler of a fresh capability, bound to Name
// as an operation value within Body: `handle (Name, Clause) => Body`.
type Handle struct {
	Range
	Name   string
	Clause *HandlerClause
	Body   Expr
}

func (e *Handle) exprNode() {}
func (e *Handle) Hash() uint64 {
	return hashNode("Handle", []string{e.Name}, e.Range, e.Clause, e.Body)
}

// HandlerClause handles an invocation of the installed operation with its
// argument bound to OpParam and the resumption bound to ResumeParam.
type HandlerClause struct {
	Range
	OpParam     string
	ResumeParam string
	Body        Expr
}

func (c *HandlerClause) Hash() uint64 {
	if c == nil {
		return 0
	}
	return hashNode("HandlerClause", []string{c.OpParam, c.ResumeParam}, c.Range, c.Body)
}

// ReplExpr is an expression entered at the REPL, whose value is printed.
type ReplExpr struct {
	Range
	Value Expr
}

func (e *ReplExpr) exprNode()    {}
func (e *ReplExpr) replNode()    {}
func (e *ReplExpr) Hash() uint64 { return hashNode("ReplExpr", nil, e.Range, e.Value) }

// ReplSeq runs First at the REPL, then continues with Next.
type ReplSeq struct {
	Range
	First Expr
	Next  Expr
}

func (e *ReplSeq) exprNode()    {}
func (e *ReplSeq) replNode()    {}
func (e *ReplSeq) Hash() uint64 { return hashNode("ReplSeq", nil, e.Range, e.First, e.Next) }

// IsSyntacticValue reports whether evaluating e can neither perform an effect nor diverge,
// judging from its syntax alone.
func IsSyntacticValue(e Expr) bool {
	switch e.(type) {
	case *Unit, *Var, *Func:
		return true
	default:
		return false
	}
}

// NewLet routes a let-binding to PolyLet when its value is a syntactic value,
// and to MonoLet otherwise.
func NewLet(name string, value, body Expr, r Range) Expr {
	if IsSyntacticValue(value) {
		return &PolyLet{Range: r, Name: name, Value: value, Body: body}
	}
	return &MonoLet{Range: r, Name: name, Value: value, Body: body}
}
