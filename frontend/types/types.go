package types

import (
	"fmt"
	"math"
)

// Level is the binding depth at which a unification variable was created.
// See "Efficient Generalization with Levels" (Oleg Kiselyov)
// http://okmij.org/ftp/ML/generalization.html#levels
type Level int32

const (
	TopLevel Level = 0
	// GenericLevel marks a variable quantified by a Scheme; it must be instantiated before use.
	GenericLevel Level = math.MaxInt32
)

// Type is implemented by every value type and by effect rows.
type Type interface {
	Kind() Kind
	fmt.Stringer
	isType()
}

var (
	_ Type = Unit{}
	_ Type = (*Var)(nil)
	_ Type = (*PureArrow)(nil)
	_ Type = (*EffArrow)(nil)
	_ Type = (*Row)(nil)
)

// Unit is the type of the unit value
type Unit struct{}

// Var is a unification variable: a write-once slot which is either unresolved
// or linked to the type it was resolved to.
type Var struct {
	id    uint64
	kind  Kind
	level Level
	link  Type
}

// PureArrow is the type of functions statically known to perform no effect and to terminate.
type PureArrow struct {
	Arg    Type
	Result Type
}

// EffArrow is the type of functions which, when called, may perform the effects in Effect.
//
// An EffArrow with an empty closed row is still not a PureArrow: only the latter guarantees termination.
type EffArrow struct {
	Arg    Type
	Result Type
	Effect *Row
}

func (Unit) isType()       {}
func (*Var) isType()       {}
func (*PureArrow) isType() {}
func (*EffArrow) isType()  {}
func (*Row) isType()       {}

func (Unit) Kind() Kind       { return KindValue }
func (t *Var) Kind() Kind     { return t.kind }
func (*PureArrow) Kind() Kind { return KindValue }
func (*EffArrow) Kind() Kind  { return KindValue }
func (*Row) Kind() Kind       { return KindRow }

func (t Unit) String() string       { return TypeString(t) }
func (t *Var) String() string       { return TypeString(t) }
func (t *PureArrow) String() string { return TypeString(t) }
func (t *EffArrow) String() string  { return TypeString(t) }
func (t *Row) String() string       { return TypeString(t) }

// ID is unique among variables of the same kind minted by one Fresher.
func (t *Var) ID() uint64 { return t.id }

func (t *Var) Level() Level { return t.level }

// Link returns the type this variable was resolved to, or nil.
func (t *Var) Link() Type { return t.link }

func (t *Var) IsResolved() bool { return t.link != nil }
func (t *Var) IsGeneric() bool  { return t.link == nil && t.level == GenericLevel }

// Resolve follows a chain of resolved variables to the type at its end.
func Resolve(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || tv.link == nil {
			return t
		}
		t = tv.link
	}
}

// Zonk returns a copy of t where every resolved variable is replaced by its solution.
// Unresolved variables are kept as they are.
func Zonk(t Type) Type {
	switch t := Resolve(t).(type) {
	case *PureArrow:
		return &PureArrow{Arg: Zonk(t.Arg), Result: Zonk(t.Result)}
	case *EffArrow:
		return &EffArrow{Arg: Zonk(t.Arg), Result: Zonk(t.Result), Effect: ZonkRow(t.Effect)}
	case *Row:
		return ZonkRow(t)
	default:
		return t
	}
}

// ZonkRow flattens a row so that its tail, if any, is unresolved.
func ZonkRow(r *Row) *Row {
	if r == nil {
		return nil
	}
	labels, tail := r.Flatten()
	if tail == nil {
		return ClosedRow(labels...)
	}
	return OpenRow(tail, labels...)
}
