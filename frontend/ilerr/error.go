package ilerr

import (
	"fmt"
	"go/token"
	"runtime/debug"
	"strings"

	"github.com/cottand/effy/frontend/ast"
	"github.com/cottand/effy/frontend/types"
)

// PrintStacks makes errors include the location they were raised from when formatted
var PrintStacks = false

type ErrCode int

const (
	None ErrCode = iota
	UnboundVariable
	NotAFunction
	TypeMismatch
	EffectMismatch
	FunctionNotPure
	NotUsedAsFunction
)

func (c ErrCode) String() string {
	switch c {
	case UnboundVariable:
		return "UnboundVariable"
	case NotAFunction:
		return "NotAFunction"
	case TypeMismatch:
		return "TypeMismatch"
	case EffectMismatch:
		return "EffectMismatch"
	case FunctionNotPure:
		return "FunctionNotPure"
	case NotUsedAsFunction:
		return "NotUsedAsFunction"
	default:
		return "Unclassified"
	}
}

// Severity tells whether checking of the enclosing declaration can continue after an error.
type Severity uint8

const (
	// Recoverable errors are recorded and checking proceeds with a best-effort type
	Recoverable Severity = iota
	// Fatal errors abort the enclosing top-level declaration
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "recoverable"
}

type IleError interface {
	Error() string
	Code() ErrCode
	Severity() Severity
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func IsFatal(e IleError) bool { return e.Severity() == Fatal }

func FormatWithCode(e IleError) string {
	if PrintStacks && e.getStack() != nil {
		lines := strings.Split(string(e.getStack()), "\n")
		if len(lines) > 6 {
			return fmt.Sprintf("%s:(E%03d) %s", strings.TrimSpace(lines[6]), e.Code(), e.Error())
		}
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// FormatWithPosition prefixes FormatWithCode with the source position of e, when fset knows it.
func FormatWithPosition(e IleError, fset *token.FileSet) string {
	if fset == nil || !e.Pos().IsValid() {
		return FormatWithCode(e)
	}
	return fmt.Sprintf("%v: %s", fset.Position(e.Pos()), FormatWithCode(e))
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error      { return e.From }
func (e Unclassified) Code() ErrCode      { return None }
func (e Unclassified) Severity() Severity { return Fatal }
func (e Unclassified) getStack() []byte   { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnboundVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnboundVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUnboundVariable) Code() ErrCode      { return UnboundVariable }
func (e NewUnboundVariable) Severity() Severity { return Fatal }
func (e NewUnboundVariable) getStack() []byte   { return e.stack }
func (e NewUnboundVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewNotAFunction struct {
	ast.Positioner
	Type  types.Type
	stack []byte
}

func (e NewNotAFunction) Error() string {
	return fmt.Sprintf("expression of type '%v' is applied but it is not a function", types.TypeString(e.Type))
}
func (e NewNotAFunction) Code() ErrCode      { return NotAFunction }
func (e NewNotAFunction) Severity() Severity { return Fatal }
func (e NewNotAFunction) getStack() []byte   { return e.stack }
func (e NewNotAFunction) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewTypeMismatch struct {
	ast.Positioner
	Expected types.Type
	Inferred types.Type
	stack    []byte
}

func (e NewTypeMismatch) Error() string {
	names := types.TypeStrings(e.Expected, e.Inferred)
	return fmt.Sprintf("type mismatch: expected type '%v', but found a different type '%v'", names[0], names[1])
}
func (e NewTypeMismatch) Code() ErrCode      { return TypeMismatch }
func (e NewTypeMismatch) Severity() Severity { return Recoverable }
func (e NewTypeMismatch) getStack() []byte   { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewEffectMismatch is raised when Effect may be performed somewhere only Ambient is allowed.
type NewEffectMismatch struct {
	ast.Positioner
	Effect  *types.Row
	Ambient *types.Row
	stack   []byte
}

func (e NewEffectMismatch) Error() string {
	names := types.TypeStrings(e.Effect, e.Ambient)
	return fmt.Sprintf("effect mismatch: effect '%v' is not allowed in a context that only permits '%v'", names[0], names[1])
}
func (e NewEffectMismatch) Code() ErrCode      { return EffectMismatch }
func (e NewEffectMismatch) Severity() Severity { return Recoverable }
func (e NewEffectMismatch) getStack() []byte   { return e.stack }
func (e NewEffectMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewFunctionNotPure struct {
	ast.Positioner
	Expected types.Type
	stack    []byte
}

func (e NewFunctionNotPure) Error() string {
	return fmt.Sprintf("function is expected to be pure with type '%v', but its body performs effects", types.TypeString(e.Expected))
}
func (e NewFunctionNotPure) Code() ErrCode      { return FunctionNotPure }
func (e NewFunctionNotPure) Severity() Severity { return Recoverable }
func (e NewFunctionNotPure) getStack() []byte   { return e.stack }
func (e NewFunctionNotPure) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewNotUsedAsFunction struct {
	ast.Positioner
	Expected types.Type
	stack    []byte
}

func (e NewNotUsedAsFunction) Error() string {
	return fmt.Sprintf("function found where a value of type '%v' was expected", types.TypeString(e.Expected))
}
func (e NewNotUsedAsFunction) Code() ErrCode      { return NotUsedAsFunction }
func (e NewNotUsedAsFunction) Severity() Severity { return Recoverable }
func (e NewNotUsedAsFunction) getStack() []byte   { return e.stack }
func (e NewNotUsedAsFunction) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
