package types

import (
	"github.com/hashicorp/go-set/v3"
)

// Generalize closes t over every unresolved variable created at a level deeper than level.
// Those variables become generic and must be instantiated before they are used again.
//
// Parameters are listed in order of first occurrence in t.
func Generalize(level Level, t Type) Scheme {
	seen := set.New[*Var](4)
	var params []*Var
	var visit func(Type)
	visit = func(t Type) {
		switch t := Resolve(t).(type) {
		case *Var:
			if t.level > level && t.level != GenericLevel && seen.Insert(t) {
				params = append(params, t)
			}
		case *PureArrow:
			visit(t.Arg)
			visit(t.Result)
		case *EffArrow:
			visit(t.Arg)
			visit(t.Result)
			visit(t.Effect)
		case *Row:
			if _, tail := t.Flatten(); tail != nil {
				visit(tail)
			}
		}
	}
	visit(t)
	for _, p := range params {
		p.level = GenericLevel
	}
	return Scheme{Params: params, Body: t}
}

// Instantiate opens s into a monomorphic type with a fresh variable per parameter.
// Instantiating the same scheme twice yields types that share no variables.
func (f *Fresher) Instantiate(level Level, s Scheme) Type {
	if s.IsMono() {
		return s.Body
	}
	subst := make(map[*Var]*Var, len(s.Params))
	for _, p := range s.Params {
		subst[p] = f.NewVar(p.kind, level)
	}
	return instantiate(subst, s.Body)
}

func instantiate(subst map[*Var]*Var, t Type) Type {
	switch t := Resolve(t).(type) {
	case *Var:
		if fresh, ok := subst[t]; ok {
			return fresh
		}
		return t
	case *PureArrow:
		return &PureArrow{Arg: instantiate(subst, t.Arg), Result: instantiate(subst, t.Result)}
	case *EffArrow:
		return &EffArrow{
			Arg:    instantiate(subst, t.Arg),
			Result: instantiate(subst, t.Result),
			Effect: instantiate(subst, t.Effect).(*Row),
		}
	case *Row:
		labels, tail := t.Flatten()
		if tail == nil {
			return t
		}
		if fresh, ok := subst[tail]; ok {
			return OpenRow(fresh, labels...)
		}
		return t
	default:
		return t
	}
}

// FreeCapabilities returns every capability label mentioned by t.
func FreeCapabilities(t Type) *set.Set[*Capability] {
	caps := set.New[*Capability](0)
	var visit func(Type)
	visit = func(t Type) {
		switch t := Resolve(t).(type) {
		case *PureArrow:
			visit(t.Arg)
			visit(t.Result)
		case *EffArrow:
			visit(t.Arg)
			visit(t.Result)
			visit(t.Effect)
		case *Row:
			labels, _ := t.Flatten()
			caps.InsertSlice(labels)
		}
	}
	visit(t)
	return caps
}
