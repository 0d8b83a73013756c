package infer

import (
	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/ir"
	"github.com/cottand/effy/frontend/types"
)

// Check elaborates e, requiring its type to be a subtype of expected under the ambient effect.
//
// Function literals are checked against the arrow shape of expected, and let
// expressions check their continuation. Every other form is inferred and then
// compared against expected, reporting a TypeMismatch when it does not fit.
func Check(env *Env, e ast.Expr, expected types.Type, ambient *types.Row) (ir.Expr, types.Purity, error) {
	env.state.logger.Debug("check", "expr", surface{e}, "expected", expected, "ambient", ambient)

	switch e := e.(type) {
	case *ast.Func:
		return checkFunc(env, e, expected, ambient)

	case *ast.PolyLet, *ast.MonoLet:
		core, _, purity, err := inferLet(env, e, expected, ambient)
		return core, purity, err

	default:
		core, inferred, purity, err := Infer(env, e, ambient)
		if err != nil {
			return nil, types.Impure, err
		}
		if !env.state.Fresher.Subtype(inferred, expected) {
			env.state.report(ilerr.New(ilerr.NewTypeMismatch{
				Positioner: ast.RangeOf(e),
				Expected:   expected,
				Inferred:   inferred,
			}))
		}
		return core, purity, nil
	}
}

func checkFunc(env *Env, e *ast.Func, expected types.Type, ambient *types.Row) (ir.Expr, types.Purity, error) {
	rng := ast.RangeOf(e)
	arrow := env.state.Fresher.DecomposeExpected(expected, env.level)

	switch arrow.Shape {
	case types.ShapePureArrow:
		inner, param := env.AddMonoVar(e.Param, arrow.Arg)
		body, bodyPurity, err := Check(inner, e.Body, arrow.Result, types.EmptyRow())
		if err != nil {
			return nil, types.Impure, err
		}
		if bodyPurity != types.Pure {
			env.state.report(ilerr.New(ilerr.NewFunctionNotPure{
				Positioner: rng,
				Expected:   expected,
			}))
		}
		return &ir.PureFunc{Range: rng, Param: param, ParamType: arrow.Arg, Body: body}, types.Pure, nil

	case types.ShapeEffArrow:
		inner, param := env.AddMonoVar(e.Param, arrow.Arg)
		// effectfulness is fixed by expected, so the purity of the body does not matter
		body, _, err := Check(inner, e.Body, arrow.Result, arrow.Effect)
		if err != nil {
			return nil, types.Impure, err
		}
		core := &ir.EffFunc{Range: rng, Param: param, ParamType: arrow.Arg, Effect: arrow.Effect, Body: body}
		return core, types.Pure, nil

	default:
		env.state.report(ilerr.New(ilerr.NewNotUsedAsFunction{
			Positioner: rng,
			Expected:   expected,
		}))
		core, _, purity, err := Infer(env, e, ambient)
		return core, purity, err
	}
}
