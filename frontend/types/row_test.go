package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowFlattenFollowsTails(t *testing.T) {
	f := NewFresher()
	st, rd, bt := f.NewCapability("st"), f.NewCapability("rd"), f.NewCapability("bt")
	tail := f.NewVar(KindRow, TopLevel)
	row := OpenRow(tail, bt, st)

	next := f.NewVar(KindRow, TopLevel)
	require.NoError(t, f.Bind(tail, OpenRow(next, rd)))

	labels, residual := row.Flatten()
	assert.Equal(t, []*Capability{st, rd, bt}, labels)
	assert.Same(t, next, residual)
	assert.Equal(t, []*Capability{st, bt}, row.Labels())

	require.NoError(t, f.Bind(next, EmptyRow()))
	_, residual = row.Flatten()
	assert.Nil(t, residual)
	assert.False(t, row.IsEmpty())
	assert.True(t, ClosedRow().IsEmpty())
}

func TestRowWithIsPersistent(t *testing.T) {
	f := NewFresher()
	st, rd := f.NewCapability("st"), f.NewCapability("rd")
	row := ClosedRow(st)
	wider := row.With(rd)

	assert.True(t, wider.Has(rd))
	assert.False(t, row.Has(rd))
	assert.Equal(t, "{st#0, rd#1}", TypeString(wider))
}

func TestRowUnion(t *testing.T) {
	f := NewFresher()
	st, rd := f.NewCapability("st"), f.NewCapability("rd")
	tail := f.NewVar(KindRow, TopLevel)

	union, err := ClosedRow(st).Union(OpenRow(tail, rd, st))
	require.NoError(t, err)
	labels, residual := union.Flatten()
	assert.Equal(t, []*Capability{st, rd}, labels)
	assert.Same(t, tail, residual)

	_, err = OpenRow(f.NewVar(KindRow, TopLevel)).Union(OpenRow(tail))
	assert.Error(t, err)
}

func TestOpenRowRejectsValueTail(t *testing.T) {
	f := NewFresher()
	assert.Panics(t, func() { OpenRow(f.NewVar(KindValue, TopLevel)) })
}

func TestFreeCapabilities(t *testing.T) {
	f := NewFresher()
	st, rd := f.NewCapability("st"), f.NewCapability("rd")
	typ := &PureArrow{
		Arg:    &EffArrow{Arg: Unit{}, Result: Unit{}, Effect: ClosedRow(st)},
		Result: &EffArrow{Arg: Unit{}, Result: Unit{}, Effect: ClosedRow(rd, st)},
	}
	caps := FreeCapabilities(typ)
	assert.Equal(t, 2, caps.Size())
	assert.True(t, caps.Contains(st))
	assert.True(t, caps.Contains(rd))
}
