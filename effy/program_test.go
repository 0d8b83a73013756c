package effy

import (
	"testing"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/ilerr"
	"github.com/cottand/effy/frontend/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProgramRoutesLets(t *testing.T) {
	src := `
declarations:
  - name: main
    expr:
      let: f
      be: {fn: x, body: x}
      in:
        let: u
        be: [f, ()]
        in:
          let!: g
          be: f
          in: g
`
	program, err := LoadProgram("routing.yaml", []byte(src))
	require.NoError(t, err)
	require.Len(t, program.Declarations, 1)

	poly, ok := program.Declarations[0].Value.(*ast.PolyLet)
	require.True(t, ok)
	mono, ok := poly.Body.(*ast.MonoLet)
	require.True(t, ok, "an application is not a syntactic value")
	_, ok = mono.Body.(*ast.MonoLet)
	assert.True(t, ok, "let! is never polymorphic")
}

func TestLoadProgramPositions(t *testing.T) {
	src := "declarations:\n  - name: main\n    expr: [f, ()]\n"
	program, err := LoadProgram("pos.yaml", []byte(src))
	require.NoError(t, err)

	app := program.Declarations[0].Value.(*ast.App)
	fset := program.FileSet()
	assert.Equal(t, "pos.yaml:3:12", fset.Position(app.Func.Pos()).String())
	assert.Equal(t, "pos.yaml:3:15", fset.Position(app.Arg.Pos()).String())
	assert.Equal(t, "pos.yaml:3:12", fset.Position(app.Pos()).String())
}

func TestLoadProgramSugar(t *testing.T) {
	src := `
declarations:
  - name: main
    expr:
      do:
        - {fn: a b, body: a}
        - [f, x, y]
        - {seq: [(), {print: ()}]}
`
	program, err := LoadProgram("sugar.yaml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t,
		"let! _ = fn(a) => fn(b) => a in let! _ = f x y in (); :print ()",
		ast.ExprString(program.Declarations[0].Value))
}

func TestLoadProgramErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{"invalid yaml", "declarations: [", "could not parse"},
		{"unknown form", "declarations:\n  - name: a\n    expr: {lambda: x}", "unknown expression"},
		{"missing body", "declarations:\n  - name: a\n    expr: {fn: x}", "missing 'body'"},
		{"undeclared ambient", "declarations:\n  - name: a\n    effect: [io]\n    expr: ()", "undeclared capability 'io'"},
		{"unknown label", "prelude:\n  f: unit ->{io} unit\n", "unknown capability 'io'"},
		{"bad annotation", "prelude:\n  f: unit -> \n", "invalid type"},
		{"row used as value", "prelude:\n  f: e ->{| e} unit\n", "is used both as"},
		{"duplicate capability", "capabilities: [io, io]\n", "declared twice"},
		{"unnamed", "declarations:\n  - expr: ()", "without a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProgram("bad.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCheckIsolatesFatalErrors(t *testing.T) {
	src := `
capabilities: [io]
prelude:
  print: unit ->{io} unit
  id: a -> a
declarations:
  - name: broken
    expr: [(), ()]
  - name: fine
    effect: [io]
    expr: [print, [id, ()]]
  - name: alsoBroken
    expr: [missing, ()]
`
	program, err := LoadProgram("isolation.yaml", []byte(src))
	require.NoError(t, err)
	result := program.Check()
	require.Len(t, result.Decls, 3)
	assert.True(t, result.HasErrors())

	broken, _ := result.Lookup("broken")
	fatal, ok := broken.FatalError()
	require.True(t, ok)
	assert.Equal(t, ilerr.NotAFunction, fatal.Code())
	assert.Nil(t, broken.Core)

	fine, _ := result.Lookup("fine")
	assert.True(t, fine.OK())
	assert.Equal(t, "unit", fine.Type.String())
	assert.IsType(t, &ir.App{}, fine.Core)

	alsoBroken, _ := result.Lookup("alsoBroken")
	fatal, ok = alsoBroken.FatalError()
	require.True(t, ok)
	assert.Equal(t, ilerr.UnboundVariable, fatal.Code())
}

func TestCheckCanRunTwice(t *testing.T) {
	src := `
prelude:
  id: a -> a
declarations:
  - name: main
    expect: unit -> unit
    expr: id
`
	program, err := LoadProgram("twice.yaml", []byte(src))
	require.NoError(t, err)
	first, second := program.Check(), program.Check()
	assert.False(t, first.HasErrors())
	assert.False(t, second.HasErrors())
	assert.Equal(t, first.Decls[0].Type.String(), second.Decls[0].Type.String())
}
