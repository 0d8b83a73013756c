package ast

import (
	"strings"
)

// ExprString renders expr in the surface syntax.
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExprWalker(expr, 0)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{Builder: &strings.Builder{}}
}

const (
	precedenceLet int16 = iota
	precedenceApp
	precedenceAtom
)

func (ctx *showContext) parens(outer, inner int16) func() {
	if outer <= inner {
		return func() {}
	}
	ctx.WriteString("(")
	return func() { ctx.WriteString(")") }
}

func (ctx *showContext) showExprWalker(expr Expr, outerPrecedence int16) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case *Unit:
		ctx.WriteString("()")
	case *Var:
		ctx.WriteString(expr.Name)
	case *Func:
		defer ctx.parens(outerPrecedence, precedenceLet)()
		ctx.WriteString("fn(" + expr.Param + ") => ")
		ctx.showExprWalker(expr.Body, precedenceLet)
	case *App:
		defer ctx.parens(outerPrecedence, precedenceApp)()
		ctx.showExprWalker(expr.Func, precedenceApp)
		ctx.WriteString(" ")
		ctx.showExprWalker(expr.Arg, precedenceAtom)
	case *PolyLet:
		ctx.showLet("let", expr.Name, expr.Value, expr.Body, outerPrecedence)
	case *MonoLet:
		ctx.showLet("let!", expr.Name, expr.Value, expr.Body, outerPrecedence)
	case *Handle:
		defer ctx.parens(outerPrecedence, precedenceLet)()
		ctx.WriteString("handle (" + expr.Name + ", ")
		if expr.Clause != nil {
			ctx.WriteString(expr.Clause.OpParam + " " + expr.Clause.ResumeParam + " -> ")
			ctx.showExprWalker(expr.Clause.Body, precedenceLet)
		}
		ctx.WriteString(") => ")
		ctx.showExprWalker(expr.Body, precedenceLet)
	case *ReplExpr:
		ctx.WriteString(":print ")
		ctx.showExprWalker(expr.Value, precedenceAtom)
	case *ReplSeq:
		defer ctx.parens(outerPrecedence, precedenceLet)()
		ctx.showExprWalker(expr.First, precedenceApp)
		ctx.WriteString("; ")
		ctx.showExprWalker(expr.Next, precedenceLet)
	default:
		ctx.WriteString("<unknown>")
	}
}

func (ctx *showContext) showLet(keyword, name string, value, body Expr, outerPrecedence int16) {
	defer ctx.parens(outerPrecedence, precedenceLet)()
	ctx.WriteString(keyword + " " + name + " = ")
	ctx.showExprWalker(value, precedenceLet)
	ctx.WriteString(" in ")
	ctx.showExprWalker(body, precedenceLet)
}

// TypeAnnString renders an annotation the way it would be written in the source.
func TypeAnnString(t TypeAnn) string {
	sb := &strings.Builder{}
	showTypeAnn(sb, t, false)
	return sb.String()
}

func showTypeAnn(sb *strings.Builder, t TypeAnn, nested bool) {
	switch t := t.(type) {
	case nil:
		sb.WriteString("nil")
	case *UnitAnn:
		sb.WriteString("unit")
	case *VarAnn:
		sb.WriteString("'" + t.Name)
	case *PureArrowAnn:
		if nested {
			sb.WriteString("(")
			defer sb.WriteString(")")
		}
		showTypeAnn(sb, t.Arg, true)
		sb.WriteString(" -> ")
		showTypeAnn(sb, t.Result, false)
	case *EffArrowAnn:
		if nested {
			sb.WriteString("(")
			defer sb.WriteString(")")
		}
		showTypeAnn(sb, t.Arg, true)
		sb.WriteString(" ->{" + strings.Join(t.Effect, ", "))
		if t.Tail != "" {
			if len(t.Effect) > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("| '" + t.Tail)
		}
		sb.WriteString("} ")
		showTypeAnn(sb, t.Result, false)
	}
}
