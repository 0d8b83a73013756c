// Package effy loads programs written as YAML documents and checks each of
// their top-level declarations with the type-and-effect inference engine.
package effy

import (
	"go/token"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/types"
	"github.com/cottand/effy/internal/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "program")

// Program is a loaded, not yet checked, program.
type Program struct {
	Name string
	// Capabilities are the effect labels the prelude and declarations may refer to by name
	Capabilities []string
	Prelude      []PreludeDecl
	Declarations []ast.Declaration

	fset *token.FileSet
	file *token.File
}

// PreludeDecl declares a variable available to every declaration. The type
// variables of its annotation are generalized.
type PreludeDecl struct {
	ast.Range
	Name string
	Type ast.TypeAnn
}

func (p *Program) FileSet() *token.FileSet { return p.fset }

type programFile struct {
	Capabilities []string          `yaml:"capabilities"`
	Prelude      yaml.Node         `yaml:"prelude"`
	Declarations []declarationFile `yaml:"declarations"`
}

type declarationFile struct {
	Name   string    `yaml:"name"`
	Effect []string  `yaml:"effect"`
	Expect yaml.Node `yaml:"expect"`
	Expr   yaml.Node `yaml:"expr"`
}

// LoadProgram parses src, using name to report positions.
func LoadProgram(name string, src []byte) (*Program, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(name, -1, len(src))
	file.SetLinesForContent(src)

	var raw programFile
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", name)
	}

	d := &decoder{file: file, fset: fset}
	program := &Program{Name: name, Capabilities: raw.Capabilities, fset: fset, file: file}

	seen := make(map[string]bool, len(raw.Capabilities))
	for _, c := range raw.Capabilities {
		if seen[c] {
			return nil, errors.Errorf("%s: capability '%s' is declared twice", name, c)
		}
		seen[c] = true
	}

	// annotations are constructed once up-front so that unknown capabilities
	// and badly kinded variables are reported when loading
	validation := types.NewFresher()
	validCaps := make(map[string]*types.Capability, len(raw.Capabilities))
	for _, c := range raw.Capabilities {
		validCaps[c] = validation.NewCapability(c)
	}
	validate := func(ann ast.TypeAnn) error {
		_, err := newTypeScope(validation, types.TopLevel, validCaps).construct(ann)
		if err != nil {
			return errors.Wrapf(err, "%v", fset.Position(ann.Pos()))
		}
		return nil
	}

	prelude, err := d.prelude(&raw.Prelude)
	if err != nil {
		return nil, err
	}
	for _, decl := range prelude {
		if err := validate(decl.Type); err != nil {
			return nil, err
		}
	}
	program.Prelude = prelude

	for _, decl := range raw.Declarations {
		if decl.Name == "" {
			return nil, d.errorf(&decl.Expr, "declaration without a name")
		}
		if decl.Expr.IsZero() {
			return nil, errors.Errorf("%s: declaration '%s' has no expr", name, decl.Name)
		}
		for _, c := range decl.Effect {
			if !seen[c] {
				return nil, d.errorf(&decl.Expr, "declaration '%s' performs undeclared capability '%s'", decl.Name, c)
			}
		}
		value, err := d.expr(&decl.Expr)
		if err != nil {
			return nil, err
		}
		var expect ast.TypeAnn
		if !decl.Expect.IsZero() {
			if expect, err = d.typeAnn(&decl.Expect); err != nil {
				return nil, err
			}
			if err := validate(expect); err != nil {
				return nil, err
			}
		}
		program.Declarations = append(program.Declarations, ast.Declaration{
			Range:  ast.RangeOf(value),
			Name:   decl.Name,
			Effect: decl.Effect,
			Expect: expect,
			Value:  value,
		})
	}
	logger.Debug("loaded program", "name", name, "declarations", len(program.Declarations))
	return program, nil
}
