package infer

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/effy/frontend/ir"
	"github.com/cottand/effy/frontend/types"
)

// Binding is what a source identifier resolves to within a scope.
type Binding struct {
	Ident  ir.Ident
	Scheme types.Scheme
}

// PreludeBinding is a variable available to every declaration of a program.
type PreludeBinding struct {
	Name   string
	Scheme types.Scheme
}

// Env maps source identifiers to their bindings.
//
// An Env is never mutated: extending it returns a new Env and leaves the parent untouched.
// The TypeState it points to, on the other hand, is shared by the whole inference run.
type Env struct {
	vars  *immutable.Map[string, Binding]
	level types.Level
	state *TypeState
}

// NewRootEnv returns the outermost scope of an inference run, holding the prelude.
func NewRootEnv(state *TypeState, prelude []PreludeBinding) *Env {
	env := &Env{
		vars:  immutable.NewMap[string, Binding](immutable.NewHasher("")),
		level: types.TopLevel,
		state: state,
	}
	for _, b := range prelude {
		env, _ = env.AddPolyVar(b.Name, b.Scheme)
	}
	return env
}

func (env *Env) State() *TypeState { return env.state }

func (env *Env) Level() types.Level { return env.level }

func (env *Env) LookupVar(name string) (Binding, bool) {
	return env.vars.Get(name)
}

// AddMonoVar binds name to t without generalizing it.
func (env *Env) AddMonoVar(name string, t types.Type) (*Env, ir.Ident) {
	return env.AddPolyVar(name, types.Mono(t))
}

// AddPolyVar binds name to s, shadowing any previous binding of name.
func (env *Env) AddPolyVar(name string, s types.Scheme) (*Env, ir.Ident) {
	ident := ir.Ident{Name: name, ID: env.state.nextIdent}
	env.state.nextIdent++
	return &Env{
		vars:  env.vars.Set(name, Binding{Ident: ident, Scheme: s}),
		level: env.level,
		state: env.state,
	}, ident
}

// Enter returns a scope one level deeper, for inferring a binding that will be generalized.
func (env *Env) Enter() *Env {
	return &Env{vars: env.vars, level: env.level + 1, state: env.state}
}

func (env *Env) FreshVar(kind types.Kind) *types.Var {
	return env.state.Fresher.NewVar(kind, env.level)
}

// FreshRow returns an open row without labels over a fresh tail.
func (env *Env) FreshRow() *types.Row {
	return env.state.Fresher.NewRow(env.level)
}

func (env *Env) FreshCapability(name string) *types.Capability {
	return env.state.Fresher.NewCapability(name)
}

// Instantiate opens s at the level of this scope.
func (env *Env) Instantiate(s types.Scheme) types.Type {
	return env.state.Fresher.Instantiate(env.level, s)
}
