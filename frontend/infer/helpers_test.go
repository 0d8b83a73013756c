package infer

import (
	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/types"
)

func unit() ast.Expr                           { return &ast.Unit{} }
func v(name string) ast.Expr                   { return &ast.Var{Name: name} }
func fn(param string, body ast.Expr) *ast.Func { return &ast.Func{Param: param, Body: body} }
func app(f, arg ast.Expr) ast.Expr             { return &ast.App{Func: f, Arg: arg} }

func let(name string, value, body ast.Expr) ast.Expr {
	return ast.NewLet(name, value, body, ast.Range{})
}
func handle(name, op, resume string, clause, body ast.Expr) ast.Expr {
	return &ast.Handle{
		Name:   name,
		Clause: &ast.HandlerClause{OpParam: op, ResumeParam: resume, Body: clause},
		Body:   body,
	}
}

// envWithOp returns a root scope where `op : unit ->{cap} unit` performs the returned capability
func envWithOp() (*Env, *types.Capability) {
	state := NewTypeState()
	capability := state.Fresher.NewCapability("cap")
	op := &types.EffArrow{Arg: types.Unit{}, Result: types.Unit{}, Effect: types.ClosedRow(capability)}
	return NewRootEnv(state, []PreludeBinding{{Name: "op", Scheme: types.Mono(op)}}), capability
}

func countCode(errs *ilerr.Errors, code ilerr.ErrCode) int {
	n := 0
	for _, c := range errs.Codes() {
		if c == code {
			n++
		}
	}
	return n
}

func pureArrow(arg, result types.Type) types.Type {
	return &types.PureArrow{Arg: arg, Result: result}
}
