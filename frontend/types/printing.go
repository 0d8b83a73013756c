package types

import (
	"strconv"
	"strings"
)

// TypeString renders t with its variables named in order of appearance:
// value variables as 'a, 'b, … and row variables as 'e, 'e1, ….
func TypeString(t Type) string {
	ctx := newShowCtx()
	ctx.showType(t, 0)
	return ctx.String()
}

// TypeStrings renders several types sharing one variable naming, so that a
// variable occurring in more than one of them is printed with the same name.
func TypeStrings(ts ...Type) []string {
	ctx := newShowCtx()
	out := make([]string, len(ts))
	for i, t := range ts {
		ctx.Reset()
		ctx.showType(t, 0)
		out[i] = ctx.String()
	}
	return out
}

// SchemeString renders s as `forall 'a 'e. body`, or just the body when s is monomorphic.
func SchemeString(s Scheme) string {
	ctx := newShowCtx()
	if !s.IsMono() {
		ctx.WriteString("forall")
		for _, p := range s.Params {
			ctx.WriteString(" ")
			ctx.WriteString(ctx.varName(p))
		}
		ctx.WriteString(". ")
	}
	ctx.showType(s.Body, 0)
	return ctx.String()
}

type showCtx struct {
	strings.Builder
	names      map[*Var]string
	valueCount int
	rowCount   int
}

func newShowCtx() *showCtx {
	return &showCtx{names: make(map[*Var]string)}
}

func (ctx *showCtx) varName(v *Var) string {
	if name, ok := ctx.names[v]; ok {
		return name
	}
	var name string
	if v.kind == KindRow {
		name = "'e"
		if ctx.rowCount > 0 {
			name += strconv.Itoa(ctx.rowCount)
		}
		ctx.rowCount++
	} else {
		name = "'" + letterName(ctx.valueCount)
		ctx.valueCount++
	}
	ctx.names[v] = name
	return name
}

func letterName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return letters[i : i+1]
	}
	return letters[i%len(letters):i%len(letters)+1] + strconv.Itoa(i/len(letters))
}

const arrowPrecedence = 1

func (ctx *showCtx) showType(t Type, outerPrecedence int) {
	switch t := Resolve(t).(type) {
	case nil:
		ctx.WriteString("<nil>")
	case Unit:
		ctx.WriteString("unit")
	case *Var:
		ctx.WriteString(ctx.varName(t))
	case *PureArrow:
		ctx.showArrow(t.Arg, t.Result, nil, outerPrecedence)
	case *EffArrow:
		ctx.showArrow(t.Arg, t.Result, t.Effect, outerPrecedence)
	case *Row:
		ctx.WriteString("{")
		ctx.showRow(t)
		ctx.WriteString("}")
	}
}

func (ctx *showCtx) showArrow(arg, result Type, effect *Row, outerPrecedence int) {
	if outerPrecedence >= arrowPrecedence {
		ctx.WriteString("(")
		defer ctx.WriteString(")")
	}
	ctx.showType(arg, arrowPrecedence)
	if effect == nil {
		ctx.WriteString(" -> ")
	} else {
		ctx.WriteString(" ->{")
		ctx.showRow(effect)
		ctx.WriteString("} ")
	}
	ctx.showType(result, 0)
}

func (ctx *showCtx) showRow(r *Row) {
	labels, tail := r.Flatten()
	for i, label := range labels {
		if i > 0 {
			ctx.WriteString(", ")
		}
		ctx.WriteString(label.String())
	}
	if tail != nil {
		if len(labels) > 0 {
			ctx.WriteString(" ")
		}
		ctx.WriteString("| ")
		ctx.WriteString(ctx.varName(tail))
	}
}
