package effy

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/cottand/effy/frontend/ast"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// decoder turns YAML nodes into surface expressions.
//
// Expressions are encoded as follows:
//
//	()                                   unit
//	x                                    variable
//	[f, a, b]                            application, ((f a) b)
//	{fn: x y, body: e}                   function literal, one parameter per name
//	{let: x, be: e1, in: e2}             let, polymorphic only when e1 is a syntactic value
//	{let!: x, be: e1, in: e2}            let, never polymorphic
//	{do: [e1, e2, e3]}                   sequencing, let! _ = e1 in let! _ = e2 in e3
//	{handle: h, op: x, resume: k,
//	 clause: e1, in: e2}                 handle (h, (x, k -> e1)) => e2
//	{print: e}                           REPL print
//	{seq: [e1, e2]}                      REPL sequence
type decoder struct {
	file *token.File
	fset *token.FileSet
}

func (d *decoder) pos(node *yaml.Node) token.Pos {
	if node.Line < 1 || node.Line > d.file.LineCount() {
		return token.NoPos
	}
	return d.file.LineStart(node.Line) + token.Pos(node.Column-1)
}

// rangeOf spans node, from its first character to the end of its last scalar
func (d *decoder) rangeOf(node *yaml.Node) ast.Range {
	start := d.pos(node)
	last := node
	for len(last.Content) > 0 {
		last = last.Content[len(last.Content)-1]
	}
	end := d.pos(last)
	if end.IsValid() {
		end += token.Pos(len(last.Value))
	}
	if end < start {
		end = start
	}
	return ast.Range{PosStart: start, PosEnd: end}
}

func (d *decoder) errorf(node *yaml.Node, format string, args ...any) error {
	return errors.Errorf("%v: %s", d.fset.Position(d.pos(node)), fmt.Sprintf(format, args...))
}

func (d *decoder) prelude(node *yaml.Node) ([]PreludeDecl, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, d.errorf(node, "prelude must map names to types")
	}
	decls := make([]PreludeDecl, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		ann, err := d.typeAnn(value)
		if err != nil {
			return nil, err
		}
		decls = append(decls, PreludeDecl{Range: d.rangeOf(value), Name: key.Value, Type: ann})
	}
	return decls, nil
}

func (d *decoder) typeAnn(node *yaml.Node) (ast.TypeAnn, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, d.errorf(node, "type annotations are written as strings")
	}
	base := d.pos(node)
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		base++
	}
	ann, err := parseAnnotation(node.Value, base)
	if err != nil {
		return nil, errors.Wrapf(err, "%v: invalid type '%s'", d.fset.Position(d.pos(node)), node.Value)
	}
	return ann, nil
}

func (d *decoder) expr(node *yaml.Node) (ast.Expr, error) {
	rng := d.rangeOf(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "()" {
			return &ast.Unit{Range: rng}, nil
		}
		if !isIdent(node.Value) || strings.HasPrefix(node.Value, "'") {
			return nil, d.errorf(node, "'%s' is not a valid variable name", node.Value)
		}
		return &ast.Var{Range: rng, Name: node.Value}, nil

	case yaml.SequenceNode:
		if len(node.Content) < 2 {
			return nil, d.errorf(node, "an application needs a function and at least one argument")
		}
		fn, err := d.expr(node.Content[0])
		if err != nil {
			return nil, err
		}
		for _, argNode := range node.Content[1:] {
			arg, err := d.expr(argNode)
			if err != nil {
				return nil, err
			}
			fn = &ast.App{Range: ast.RangeBetween(fn, arg), Func: fn, Arg: arg}
		}
		return fn, nil

	case yaml.MappingNode:
		return d.form(node, rng)

	default:
		return nil, d.errorf(node, "unexpected YAML node, expected an expression")
	}
}

// form decodes the expressions written as mappings, identified by their keys
func (d *decoder) form(node *yaml.Node, rng ast.Range) (ast.Expr, error) {
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	var keys []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
		fields[node.Content[i].Value] = node.Content[i+1]
	}
	exprField := func(name string) (ast.Expr, error) {
		field, ok := fields[name]
		if !ok {
			return nil, d.errorf(node, "missing '%s'", name)
		}
		return d.expr(field)
	}
	nameField := func(name string) (string, error) {
		field, ok := fields[name]
		if !ok || field.Kind != yaml.ScalarNode || !isIdent(field.Value) {
			return "", d.errorf(node, "'%s' must be a variable name", name)
		}
		return field.Value, nil
	}

	switch {
	case fields["fn"] != nil:
		params := strings.Fields(fields["fn"].Value)
		if len(params) == 0 {
			return nil, d.errorf(node, "function without parameters")
		}
		body, err := exprField("body")
		if err != nil {
			return nil, err
		}
		for i := len(params) - 1; i >= 0; i-- {
			body = &ast.Func{Range: rng, Param: params[i], Body: body}
		}
		return body, nil

	case fields["let"] != nil, fields["let!"] != nil:
		mono := fields["let!"] != nil
		keyword := "let"
		if mono {
			keyword = "let!"
		}
		name, err := nameField(keyword)
		if err != nil {
			return nil, err
		}
		value, err := exprField("be")
		if err != nil {
			return nil, err
		}
		body, err := exprField("in")
		if err != nil {
			return nil, err
		}
		if mono {
			return &ast.MonoLet{Range: rng, Name: name, Value: value, Body: body}, nil
		}
		return ast.NewLet(name, value, body, rng), nil

	case fields["do"] != nil:
		steps, err := d.exprList(fields["do"])
		if err != nil {
			return nil, err
		}
		result := steps[len(steps)-1]
		for i := len(steps) - 2; i >= 0; i-- {
			result = &ast.MonoLet{Range: ast.RangeBetween(steps[i], result), Name: "_", Value: steps[i], Body: result}
		}
		return result, nil

	case fields["handle"] != nil:
		name, err := nameField("handle")
		if err != nil {
			return nil, err
		}
		op, err := nameField("op")
		if err != nil {
			return nil, err
		}
		resume, err := nameField("resume")
		if err != nil {
			return nil, err
		}
		clauseBody, err := exprField("clause")
		if err != nil {
			return nil, err
		}
		body, err := exprField("in")
		if err != nil {
			return nil, err
		}
		clause := &ast.HandlerClause{Range: d.rangeOf(fields["clause"]), OpParam: op, ResumeParam: resume, Body: clauseBody}
		return &ast.Handle{Range: rng, Name: name, Clause: clause, Body: body}, nil

	case fields["print"] != nil:
		value, err := exprField("print")
		if err != nil {
			return nil, err
		}
		return &ast.ReplExpr{Range: rng, Value: value}, nil

	case fields["seq"] != nil:
		steps, err := d.exprList(fields["seq"])
		if err != nil {
			return nil, err
		}
		result := steps[len(steps)-1]
		for i := len(steps) - 2; i >= 0; i-- {
			result = &ast.ReplSeq{Range: ast.RangeBetween(steps[i], result), First: steps[i], Next: result}
		}
		return result, nil

	default:
		return nil, d.errorf(node, "unknown expression with keys %v", keys)
	}
}

func (d *decoder) exprList(node *yaml.Node) ([]ast.Expr, error) {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil, d.errorf(node, "expected a non-empty list of expressions")
	}
	exprs := make([]ast.Expr, 0, len(node.Content))
	for _, child := range node.Content {
		e, err := d.expr(child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}
