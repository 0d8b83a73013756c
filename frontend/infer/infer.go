package infer

import (
	"log/slog"
	"reflect"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/ir"
	"github.com/cottand/effy/frontend/types"
)

// surface renders an ast.Expr only when the log record is written
type surface struct{ ast.Expr }

func (s surface) LogValue() slog.Value { return slog.StringValue(ast.ExprString(s.Expr)) }

// Infer synthesizes the type of e under the ambient effect, along with whether
// evaluating e is pure, and elaborates e into the core language.
//
// Recoverable errors are recorded in the TypeState of env. A non-nil error means
// the enclosing declaration had to be abandoned, either because of a fatal
// ilerr.IleError or because of an internal failure.
func Infer(env *Env, e ast.Expr, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error) {
	env.state.logger.Debug("infer", "expr", surface{e}, "ambient", ambient, "level", env.level)
	rng := ast.RangeOf(e)

	switch e := e.(type) {
	case *ast.Unit:
		return &ir.Unit{Range: rng}, types.Unit{}, types.Pure, nil

	case *ast.Var:
		binding, ok := env.LookupVar(e.Name)
		if !ok {
			return nil, nil, types.Impure, env.state.fatal(ilerr.New(ilerr.NewUnboundVariable{
				Positioner: rng,
				Name:       e.Name,
			}))
		}
		t := env.Instantiate(binding.Scheme)
		return &ir.Var{Range: rng, Ident: binding.Ident, Type: t}, t, types.Pure, nil

	case *ast.Func:
		paramType := env.FreshVar(types.KindValue)
		bodyEff := env.FreshRow()
		inner, param := env.AddMonoVar(e.Param, paramType)
		body, resultType, bodyPurity, err := Infer(inner, e.Body, bodyEff)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		// forming a closure is pure either way, only calling it may not be
		if bodyPurity == types.Pure {
			core := &ir.PureFunc{Range: rng, Param: param, ParamType: paramType, Body: body}
			return core, &types.PureArrow{Arg: paramType, Result: resultType}, types.Pure, nil
		}
		core := &ir.EffFunc{Range: rng, Param: param, ParamType: paramType, Effect: bodyEff, Body: body}
		return core, &types.EffArrow{Arg: paramType, Result: resultType, Effect: bodyEff}, types.Pure, nil

	case *ast.App:
		return inferApp(env, e, ambient)

	case *ast.PolyLet, *ast.MonoLet:
		return inferLet(env, e, nil, ambient)

	case *ast.Handle:
		return inferHandle(env, e, ambient)

	case ast.ReplNode:
		return env.state.Repl.ElaborateRepl(e, ambient, func(sub ast.Expr, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error) {
			return Infer(env, sub, ambient)
		})

	default:
		return nil, nil, types.Impure, env.state.fail("unexpected expression %v of type %v", e, reflect.TypeOf(e))
	}
}

func inferApp(env *Env, e *ast.App, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error) {
	fn, fnType, fnPurity, err := Infer(env, e.Func, ambient)
	if err != nil {
		return nil, nil, types.Impure, err
	}
	rng := ast.RangeOf(e)
	arrow := env.state.Fresher.DecomposeInferred(fnType)

	switch arrow.Shape {
	case types.ShapePureArrow:
		arg, argPurity, err := Check(env, e.Arg, arrow.Arg, ambient)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		core := &ir.App{Range: rng, Func: fn, Arg: arg, Type: arrow.Result}
		return core, arrow.Result, types.Join(fnPurity, argPurity), nil

	case types.ShapeEffArrow:
		arg, _, err := Check(env, e.Arg, arrow.Arg, ambient)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		if !env.state.Fresher.Subeffect(arrow.Effect, ambient) {
			env.state.report(ilerr.New(ilerr.NewEffectMismatch{
				Positioner: rng,
				Effect:     arrow.Effect,
				Ambient:    ambient,
			}))
		}
		core := &ir.App{Range: rng, Func: fn, Arg: arg, Type: arrow.Result}
		return core, arrow.Result, types.Impure, nil

	default:
		return nil, nil, types.Impure, env.state.fatal(ilerr.New(ilerr.NewNotAFunction{
			Positioner: ast.RangeOf(e.Func),
			Type:       fnType,
		}))
	}
}

// inferLet handles both let forms. When expected is not nil the
// continuation is checked against it rather than inferred.
func inferLet(env *Env, e ast.Expr, expected types.Type, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error) {
	var (
		name        string
		valueCore   ir.Expr
		scheme      types.Scheme
		valuePurity types.Purity
		body        ast.Expr
	)
	switch e := e.(type) {
	case *ast.PolyLet:
		value, valueType, purity, err := Infer(env.Enter(), e.Value, types.EmptyRow())
		if err != nil {
			return nil, nil, types.Impure, err
		}
		if purity != types.Pure {
			return nil, nil, types.Impure, env.state.fail("binding of '%s' in a polymorphic let at %v is not pure", e.Name, ast.RangeOf(e))
		}
		name, valueCore, body = e.Name, value, e.Body
		scheme, valuePurity = types.Generalize(env.level, valueType), types.Pure
		env.state.logger.Debug("generalized let binding", "name", e.Name, "scheme", scheme)

	case *ast.MonoLet:
		value, valueType, purity, err := Infer(env, e.Value, ambient)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		name, valueCore, body = e.Name, value, e.Body
		scheme, valuePurity = types.Mono(valueType), purity

	default:
		return nil, nil, types.Impure, env.state.fail("expected a let expression, got %v", reflect.TypeOf(e))
	}

	bodyEnv, ident := env.AddPolyVar(name, scheme)
	var (
		bodyCore   ir.Expr
		bodyType   types.Type
		bodyPurity types.Purity
		err        error
	)
	if expected == nil {
		bodyCore, bodyType, bodyPurity, err = Infer(bodyEnv, body, ambient)
	} else {
		bodyType = expected
		bodyCore, bodyPurity, err = Check(bodyEnv, body, expected, ambient)
	}
	if err != nil {
		return nil, nil, types.Impure, err
	}
	core := &ir.Let{Range: ast.RangeOf(e), Ident: ident, Scheme: scheme, Value: valueCore, Body: bodyCore}
	return core, bodyType, types.Join(valuePurity, bodyPurity), nil
}

func inferHandle(env *Env, e *ast.Handle, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error) {
	// both are used covariantly by the handle's result and contravariantly by
	// the resumption's argument, so they must exist before anything is checked
	resultType := env.FreshVar(types.KindValue)
	resultEff := env.FreshRow()
	capability := env.FreshCapability(e.Name)

	clause, opType, err := inferHandlerClause(env, e.Clause, capability, resultType, resultEff)
	if err != nil {
		return nil, nil, types.Impure, err
	}

	bodyEnv, ident := env.AddMonoVar(e.Name, opType)
	body, _, err := Check(bodyEnv, e.Body, resultType, resultEff.With(capability))
	if err != nil {
		return nil, nil, types.Impure, err
	}

	rng := ast.RangeOf(e)
	if !env.state.Fresher.Subeffect(resultEff, ambient) {
		env.state.report(ilerr.New(ilerr.NewEffectMismatch{
			Positioner: rng,
			Effect:     resultEff,
			Ambient:    ambient,
		}))
	}
	core := &ir.Handle{
		Range:        rng,
		Cap:          capability,
		Ident:        ident,
		Clause:       clause,
		Body:         body,
		ResultType:   resultType,
		ResultEffect: resultEff,
	}
	return core, resultType, types.Impure, nil
}

// inferHandlerClause elaborates the single clause of a handler installing capability, and
// returns the type callers of the operation see.
func inferHandlerClause(
	env *Env,
	clause *ast.HandlerClause,
	capability *types.Capability,
	resultType types.Type,
	resultEff *types.Row,
) (*ir.HandlerClause, types.Type, error) {
	if clause == nil {
		return nil, nil, env.state.fail("handle expression without a handler clause")
	}
	inType := env.FreshVar(types.KindValue)
	outType := env.FreshVar(types.KindValue)
	// resuming performs exactly resultEff
	resumeType := &types.EffArrow{Arg: outType, Result: resultType, Effect: resultEff}

	clauseEnv, op := env.AddMonoVar(clause.OpParam, inType)
	clauseEnv, resume := clauseEnv.AddMonoVar(clause.ResumeParam, resumeType)

	body, _, err := Check(clauseEnv, clause.Body, resultType, resultEff)
	if err != nil {
		return nil, nil, err
	}
	opType := &types.EffArrow{Arg: inType, Result: outType, Effect: types.ClosedRow(capability)}
	core := &ir.HandlerClause{Range: ast.RangeOf(clause), Op: op, Resume: resume, OpType: opType, Body: body}
	return core, opType, nil
}

// Declaration elaborates a top-level expression under the ambient effect,
// checking it against expected when expected is not nil.
func Declaration(env *Env, e ast.Expr, expected types.Type, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error) {
	if expected == nil {
		return Infer(env, e, ambient)
	}
	core, purity, err := Check(env, e, expected, ambient)
	return core, expected, purity, err
}
