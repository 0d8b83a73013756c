package effy

import (
	"errors"
	"go/token"

	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/infer"
	"github.com/cottand/effy/frontend/ir"
	"github.com/cottand/effy/frontend/types"
)

// Result holds the outcome of checking every declaration of a Program, in source order.
type Result struct {
	Decls []DeclResult
	Fset  *token.FileSet
}

// DeclResult is the outcome of checking a single declaration.
//
// Fatal is set when checking the declaration was abandoned: Core and Type are then nil.
// Errors holds the recoverable errors reported until then, in the order they were found.
type DeclResult struct {
	Name   string
	Pos    token.Pos
	Core   ir.Expr
	Type   types.Type
	Purity types.Purity
	Errors *ilerr.Errors
	Fatal  error
}

// OK reports whether the declaration was checked without any error.
func (d DeclResult) OK() bool { return d.Fatal == nil && !d.Errors.HasError() }

// FatalError returns the diagnostic that aborted the declaration, if Fatal is one.
// Fatal may also be an internal failure of the checker, which is not a diagnostic.
func (d DeclResult) FatalError() (ilerr.IleError, bool) {
	var ileErr ilerr.IleError
	if d.Fatal == nil || !errors.As(d.Fatal, &ileErr) {
		return nil, false
	}
	return ileErr, true
}

func (r *Result) HasErrors() bool {
	for _, d := range r.Decls {
		if !d.OK() {
			return true
		}
	}
	return false
}

// Lookup returns the result of the declaration called name.
func (r *Result) Lookup(name string) (DeclResult, bool) {
	for _, d := range r.Decls {
		if d.Name == name {
			return d, true
		}
	}
	return DeclResult{}, false
}

// Check runs inference on every declaration of p independently: an error in one
// declaration never prevents the others from being checked.
//
// Capabilities and prelude variables are shared by all declarations. Each
// declaration is inferred under the ambient effect made of the capabilities it
// lists, and checked against its expected type when it has one.
func (p *Program) Check() *Result {
	fresher := types.NewFresher()
	capabilities := make(map[string]*types.Capability, len(p.Capabilities))
	for _, name := range p.Capabilities {
		capabilities[name] = fresher.NewCapability(name)
	}

	prelude := make([]infer.PreludeBinding, 0, len(p.Prelude))
	for _, decl := range p.Prelude {
		t, err := newTypeScope(fresher, types.TopLevel+1, capabilities).construct(decl.Type)
		if err != nil {
			// validated by LoadProgram
			panic(err)
		}
		prelude = append(prelude, infer.PreludeBinding{Name: decl.Name, Scheme: types.Generalize(types.TopLevel, t)})
	}

	result := &Result{Fset: p.fset}
	for _, decl := range p.Declarations {
		state := infer.NewTypeState()
		state.Fresher = fresher
		env := infer.NewRootEnv(state, prelude)

		labels := make([]*types.Capability, 0, len(decl.Effect))
		for _, name := range decl.Effect {
			labels = append(labels, capabilities[name])
		}
		ambient := types.ClosedRow(labels...)

		var expected types.Type
		if decl.Expect != nil {
			t, err := newTypeScope(fresher, types.TopLevel, capabilities).construct(decl.Expect)
			if err != nil {
				panic(err)
			}
			expected = t
		}

		core, t, purity, err := infer.Declaration(env, decl.Value, expected, ambient)
		declResult := DeclResult{
			Name:   decl.Name,
			Pos:    decl.Pos(),
			Errors: state.Errors,
			Fatal:  err,
		}
		if err == nil {
			declResult.Core, declResult.Type, declResult.Purity = core, types.Zonk(t), purity
		} else {
			declResult.Purity = types.Impure
		}
		logger.Debug("checked declaration", "name", decl.Name, "type", declResult.Type, "errors", state.Errors)
		result.Decls = append(result.Decls, declResult)
	}
	return result
}
