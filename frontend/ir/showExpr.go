package ir

import (
	"strings"

	"github.com/cottand/effy/frontend/types"
)

// ExprString renders e with core identifiers and its type annotations, one binding per line.
func ExprString(e Expr) string {
	ctx := &showCtx{Builder: &strings.Builder{}, indentStr: "  "}
	ctx.show(e)
	return ctx.String()
}

type showCtx struct {
	*strings.Builder
	indent    int
	indentStr string
}

func (ctx *showCtx) newline() {
	ctx.WriteString("\n")
	ctx.WriteString(strings.Repeat(ctx.indentStr, ctx.indent))
}

func (ctx *showCtx) show(e Expr) {
	switch e := e.(type) {
	case nil:
		ctx.WriteString("nil")
	case *Unit:
		ctx.WriteString("()")
	case *Var:
		ctx.WriteString(e.Ident.String())
	case *PureFunc:
		ctx.WriteString("(fn (" + e.Param.String() + ": " + types.TypeString(e.ParamType) + ") => ")
		ctx.show(e.Body)
		ctx.WriteString(")")
	case *EffFunc:
		ctx.WriteString("(fn{" + types.TypeString(e.Effect) + "} (" + e.Param.String() + ": " + types.TypeString(e.ParamType) + ") => ")
		ctx.show(e.Body)
		ctx.WriteString(")")
	case *App:
		ctx.WriteString("(")
		ctx.show(e.Func)
		ctx.WriteString(" ")
		ctx.show(e.Arg)
		ctx.WriteString(")")
	case *Let:
		ctx.WriteString("let " + e.Ident.String() + ": " + types.SchemeString(e.Scheme) + " =")
		ctx.indent++
		ctx.newline()
		ctx.show(e.Value)
		ctx.indent--
		ctx.newline()
		ctx.WriteString("in ")
		ctx.show(e.Body)
	case *Handle:
		ctx.WriteString("handle[" + e.Cap.String() + "] " + e.Ident.String() + ": " + types.TypeString(e.ResultType) +
			" ! " + types.TypeString(e.ResultEffect) + " with")
		ctx.indent++
		if e.Clause != nil {
			ctx.newline()
			ctx.WriteString(e.Clause.Op.String() + " " + e.Clause.Resume.String() + " -> ")
			ctx.show(e.Clause.Body)
		}
		ctx.indent--
		ctx.newline()
		ctx.WriteString("in ")
		ctx.show(e.Body)
	case *ReplExpr:
		ctx.WriteString(":print ")
		ctx.show(e.Value)
	case *ReplSeq:
		ctx.show(e.First)
		ctx.WriteString(";")
		ctx.newline()
		ctx.show(e.Next)
	}
}
