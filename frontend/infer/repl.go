package infer

import (
	"reflect"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/ir"
	"github.com/cottand/effy/frontend/types"
	"github.com/pkg/errors"
)

// Elaborator infers a sub-expression of a REPL form in the scope the form appears in.
type Elaborator func(e ast.Expr, ambient *types.Row) (ir.Expr, types.Type, types.Purity, error)

// ReplHandler elaborates the expression forms only the REPL produces.
// The inference rules hand those forms over unchanged together with the ambient effect.
type ReplHandler interface {
	ElaborateRepl(node ast.ReplNode, ambient *types.Row, elaborate Elaborator) (ir.Expr, types.Type, types.Purity, error)
}

// SequenceRepl treats REPL forms as a sequence of pieces: the result is pure
// only when every piece is, and its type is the type of the last piece.
type SequenceRepl struct{}

func (SequenceRepl) ElaborateRepl(node ast.ReplNode, ambient *types.Row, elaborate Elaborator) (ir.Expr, types.Type, types.Purity, error) {
	switch node := node.(type) {
	case *ast.ReplExpr:
		value, t, purity, err := elaborate(node.Value, ambient)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		return &ir.ReplExpr{Range: ast.RangeOf(node), Value: value, Type: t}, t, purity, nil

	case *ast.ReplSeq:
		first, _, firstPurity, err := elaborate(node.First, ambient)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		next, t, nextPurity, err := elaborate(node.Next, ambient)
		if err != nil {
			return nil, nil, types.Impure, err
		}
		return &ir.ReplSeq{Range: ast.RangeOf(node), First: first, Next: next}, t, types.Join(firstPurity, nextPurity), nil

	default:
		return nil, nil, types.Impure, errors.Errorf("unsupported REPL form %v", reflect.TypeOf(node))
	}
}
