package infer

import (
	"errors"
	"testing"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/ir"
	"github.com/cottand/effy/frontend/types"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferUnit(t *testing.T) {
	env := NewRootEnv(NewTypeState(), nil)
	core, typ, purity, err := Infer(env, unit(), types.EmptyRow())
	require.NoError(t, err)
	assert.IsType(t, &ir.Unit{}, core)
	assert.Equal(t, types.Unit{}, typ)
	assert.Equal(t, types.Pure, purity)
}

func TestUnboundVariableIsFatal(t *testing.T) {
	env := NewRootEnv(NewTypeState(), nil)
	_, _, _, err := Infer(env, app(fn("x", v("x")), v("nope")), types.EmptyRow())
	require.Error(t, err)

	var ileErr ilerr.IleError
	require.True(t, errors.As(err, &ileErr))
	assert.Equal(t, ilerr.UnboundVariable, ileErr.Code())
	assert.True(t, ilerr.IsFatal(ileErr))
	assert.False(t, env.State().Errors.HasError())
}

func TestPolymorphicIdentity(t *testing.T) {
	env := NewRootEnv(NewTypeState(), nil)
	core, typ, purity, err := Infer(env, let("id", fn("x", v("x")), app(v("id"), unit())), types.EmptyRow())
	require.NoError(t, err)
	assert.False(t, env.State().Errors.HasError())
	assert.Equal(t, "unit", types.TypeString(typ))
	assert.Equal(t, types.Pure, purity)

	letCore, ok := core.(*ir.Let)
	require.True(t, ok, spew.Sdump(core))
	assert.Equal(t, "forall 'a. 'a -> 'a", types.SchemeString(letCore.Scheme))
	assert.IsType(t, &ir.PureFunc{}, letCore.Value)
}

func TestInstantiationsAreIndependent(t *testing.T) {
	env := NewRootEnv(NewTypeState(), nil)
	// the first use of id is resolved to unit, the second must stay polymorphic
	expr := let("id", fn("x", v("x")),
		let("u", app(v("id"), unit()),
			v("id")))
	_, typ, _, err := Infer(env, expr, types.EmptyRow())
	require.NoError(t, err)

	arrow, ok := types.Resolve(typ).(*types.PureArrow)
	require.True(t, ok, types.TypeString(typ))
	param, ok := types.Resolve(arrow.Arg).(*types.Var)
	require.True(t, ok, "argument of the second instantiation was resolved to %v", types.TypeString(arrow.Arg))
	assert.False(t, param.IsGeneric())
	assert.Equal(t, "'a -> 'a", types.TypeString(typ))
}

func TestFunctionLiterals(t *testing.T) {
	t.Run("pure body", func(t *testing.T) {
		env, _ := envWithOp()
		core, typ, purity, err := Infer(env, fn("x", v("x")), types.EmptyRow())
		require.NoError(t, err)
		assert.IsType(t, &ir.PureFunc{}, core)
		assert.IsType(t, &types.PureArrow{}, typ)
		assert.Equal(t, types.Pure, purity)
	})
	t.Run("effectful body", func(t *testing.T) {
		env, _ := envWithOp()
		core, typ, purity, err := Infer(env, fn("x", app(v("op"), v("x"))), types.EmptyRow())
		require.NoError(t, err)
		assert.IsType(t, &ir.EffFunc{}, core)
		assert.Equal(t, "unit ->{cap#0 | 'e} unit", types.TypeString(typ))
		// forming the closure performs nothing
		assert.Equal(t, types.Pure, purity)
		assert.False(t, env.State().Errors.HasError())
	})
}

func TestApplicationEffectContainment(t *testing.T) {
	tests := []struct {
		name     string
		ambient  func(capability *types.Capability, env *Env) *types.Row
		mismatch bool
	}{
		{"closed row with the capability", func(c *types.Capability, _ *Env) *types.Row { return types.ClosedRow(c) }, false},
		{"empty row", func(*types.Capability, *Env) *types.Row { return types.EmptyRow() }, true},
		{"open row", func(_ *types.Capability, env *Env) *types.Row { return env.FreshRow() }, false},
		{"closed row without the capability", func(_ *types.Capability, env *Env) *types.Row {
			return types.ClosedRow(env.FreshCapability("other"))
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, capability := envWithOp()
			ambient := tt.ambient(capability, env)
			_, typ, purity, err := Infer(env, app(v("op"), unit()), ambient)
			require.NoError(t, err)
			assert.Equal(t, types.Unit{}, typ)
			assert.Equal(t, types.Impure, purity)
			assert.Equal(t, tt.mismatch, countCode(env.State().Errors, ilerr.EffectMismatch) == 1)
			assert.Len(t, env.State().Errors.Errors(), countCode(env.State().Errors, ilerr.EffectMismatch))
		})
	}
}

func TestOpenAmbientAbsorbsLatentEffect(t *testing.T) {
	env, capability := envWithOp()
	ambient := env.FreshRow()
	_, _, _, err := Infer(env, app(v("op"), unit()), ambient)
	require.NoError(t, err)
	labels, tail := ambient.Flatten()
	assert.Equal(t, []*types.Capability{capability}, labels)
	assert.NotNil(t, tail)
}

func TestPureApplicationJoinsPurity(t *testing.T) {
	env := NewRootEnv(NewTypeState(), nil)
	_, typ, purity, err := Infer(env, app(fn("x", v("x")), unit()), types.EmptyRow())
	require.NoError(t, err)
	assert.Equal(t, "unit", types.TypeString(typ))
	assert.Equal(t, types.Pure, purity)
}

func TestNotAFunctionIsFatal(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"unit literal", app(unit(), unit())},
		{"let bound unit", let("u", unit(), app(v("u"), app(v("undefined"), unit())))},
		{"result of an application", app(app(fn("x", v("x")), unit()), unit())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewRootEnv(NewTypeState(), nil)
			_, _, _, err := Infer(env, tt.expr, types.EmptyRow())
			var ileErr ilerr.IleError
			require.True(t, errors.As(err, &ileErr), "expected a diagnostic, got %v", err)
			assert.Equal(t, ilerr.NotAFunction, ileErr.Code())
			assert.Equal(t, "unit", types.TypeString(ileErr.(ilerr.NewNotAFunction).Type))
			assert.False(t, env.State().Errors.HasError())
		})
	}
}

func TestMonomorphicLetIsNeverGeneralized(t *testing.T) {
	env := NewRootEnv(NewTypeState(), nil)
	// the bound value is an application, so it is not a syntactic value
	expr := let("f", app(fn("z", v("z")), fn("x", v("x"))), v("f"))
	core, _, purity, err := Infer(env, expr, types.EmptyRow())
	require.NoError(t, err)
	letCore, ok := core.(*ir.Let)
	require.True(t, ok)
	assert.True(t, letCore.Scheme.IsMono(), types.SchemeString(letCore.Scheme))
	assert.Equal(t, types.Pure, purity)
}

func TestMonomorphicLetJoinsPurity(t *testing.T) {
	env, capability := envWithOp()
	expr := let("r", app(v("op"), unit()), v("r"))
	core, typ, purity, err := Infer(env, expr, types.ClosedRow(capability))
	require.NoError(t, err)
	assert.IsType(t, &ast.MonoLet{}, expr)
	assert.True(t, core.(*ir.Let).Scheme.IsMono())
	assert.Equal(t, "unit", types.TypeString(typ))
	assert.Equal(t, types.Impure, purity)
}

func TestImpurePolymorphicLetIsAFailure(t *testing.T) {
	env, capability := envWithOp()
	expr := &ast.PolyLet{Name: "x", Value: app(v("op"), unit()), Body: v("x")}
	_, _, _, err := Infer(env, expr, types.ClosedRow(capability))
	require.Error(t, err)

	var ileErr ilerr.IleError
	assert.False(t, errors.As(err, &ileErr))
	assert.Len(t, env.State().Failures, 1)
}

func TestPolymorphicLetBodyUsesAmbient(t *testing.T) {
	env, capability := envWithOp()
	expr := let("f", fn("x", app(v("op"), v("x"))), app(v("f"), unit()))
	core, typ, purity, err := Infer(env, expr, types.ClosedRow(capability))
	require.NoError(t, err)
	assert.False(t, env.State().Errors.HasError(), env.State().Errors.LogValue().String())
	assert.Equal(t, "unit", types.TypeString(typ))
	assert.Equal(t, types.Impure, purity)
	// the latent row of f is quantified over its tail
	assert.Len(t, core.(*ir.Let).Scheme.Params, 1)
}
