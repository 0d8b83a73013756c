package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	f := NewFresher()
	st, rd := f.NewCapability("st"), f.NewCapability("rd")
	a, b := f.NewVar(KindValue, TopLevel), f.NewVar(KindValue, TopLevel)
	e := f.NewVar(KindRow, TopLevel)

	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"unit", Unit{}, "unit"},
		{"variable", a, "'a"},
		{"pure arrow", &PureArrow{Arg: a, Result: b}, "'a -> 'b"},
		{"arrows associate right", &PureArrow{Arg: a, Result: &PureArrow{Arg: b, Result: a}}, "'a -> 'b -> 'a"},
		{"arrow argument", &PureArrow{Arg: &PureArrow{Arg: a, Result: b}, Result: a}, "('a -> 'b) -> 'a"},
		{"closed effect", &EffArrow{Arg: Unit{}, Result: Unit{}, Effect: ClosedRow(rd, st)}, "unit ->{st#0, rd#1} unit"},
		{"empty effect", &EffArrow{Arg: Unit{}, Result: Unit{}, Effect: EmptyRow()}, "unit ->{} unit"},
		{"open effect", &EffArrow{Arg: a, Result: Unit{}, Effect: OpenRow(e, st)}, "'a ->{st#0 | 'e} unit"},
		{"row", OpenRow(e), "{| 'e}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeString(tt.typ))
		})
	}
}

func TestPurityJoin(t *testing.T) {
	assert.Equal(t, Pure, Join(Pure, Pure))
	assert.Equal(t, Impure, Join(Pure, Impure))
	assert.Equal(t, Impure, Join(Impure, Pure))
	assert.Equal(t, Impure, Join(Impure, Impure))
	assert.Equal(t, "pure", Pure.String())
}

func TestZonk(t *testing.T) {
	f := NewFresher()
	a := f.NewVar(KindValue, TopLevel)
	tail := f.NewVar(KindRow, TopLevel)
	st := f.NewCapability("st")
	_ = f.Bind(a, Unit{})
	_ = f.Bind(tail, ClosedRow(st))

	zonked := Zonk(&EffArrow{Arg: a, Result: a, Effect: OpenRow(tail)}).(*EffArrow)
	assert.Equal(t, Unit{}, zonked.Arg)
	assert.Nil(t, zonked.Effect.Tail())
	assert.Equal(t, []*Capability{st}, zonked.Effect.Labels())
}
