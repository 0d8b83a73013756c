package types

import (
	"cmp"
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/effy/util"
)

// Capability is a single abstract effect label, introduced by one handler installation
// (or declared up-front by a program prelude).
type Capability struct {
	id   uint64
	name string
}

func (c *Capability) ID() uint64     { return c.id }
func (c *Capability) Name() string   { return c.name }
func (c *Capability) Kind() Kind     { return KindCapability }
func (c *Capability) String() string { return fmt.Sprintf("%s#%d", c.name, c.id) }

type capabilityComparer struct{}

func (capabilityComparer) Compare(a, b *Capability) int { return cmp.Compare(a.id, b.id) }

func capabilityLess(a, b *Capability) bool { return a.id < b.id }

var emptyLabels = immutable.NewSortedSet[*Capability](capabilityComparer{})

// Row is an effect row: a set of capability labels plus an optional open tail.
// A nil tail means the row is closed.
type Row struct {
	labels immutable.SortedSet[*Capability]
	tail   *Var
}

// EmptyRow is the closed row without labels: the fully pure ambient effect.
func EmptyRow() *Row { return &Row{labels: emptyLabels} }

func ClosedRow(caps ...*Capability) *Row {
	return &Row{labels: immutable.NewSortedSet[*Capability](capabilityComparer{}, caps...)}
}

// OpenRow builds a row whose remaining labels are given by tail, which must be of KindRow.
func OpenRow(tail *Var, caps ...*Capability) *Row {
	if tail != nil && tail.kind != KindRow {
		panic("open row tail must be a row variable, got " + tail.kind.String())
	}
	return &Row{labels: immutable.NewSortedSet[*Capability](capabilityComparer{}, caps...), tail: tail}
}

// Labels returns the labels stored directly in r, sorted by id. Labels reachable
// through a resolved tail are not included; see Flatten.
func (r *Row) Labels() []*Capability { return r.labels.Items() }

func (r *Row) Tail() *Var { return r.tail }

// Has reports whether c is one of the labels stored directly in r.
func (r *Row) Has(c *Capability) bool { return r.labels.Has(c) }

// Flatten follows resolved tails and returns every label of the row together with
// its unresolved tail, or a nil tail when the row is closed.
func (r *Row) Flatten() (labels []*Capability, tail *Var) {
	labels = r.labels.Items()
	for current := r.tail; current != nil; {
		if current.link == nil {
			return labels, current
		}
		next, ok := current.link.(*Row)
		if !ok {
			panic("row variable resolved to non-row type " + current.link.String())
		}
		labels = util.SortedUnion(labels, next.labels.Items(), capabilityLess)
		current = next.tail
	}
	return labels, nil
}

// IsEmpty reports whether the row is closed and has no labels once flattened.
func (r *Row) IsEmpty() bool {
	labels, tail := r.Flatten()
	return tail == nil && len(labels) == 0
}

// With returns a row with the extra labels added; r is unchanged.
func (r *Row) With(caps ...*Capability) *Row {
	labels := r.labels
	for _, c := range caps {
		labels = labels.Add(c)
	}
	return &Row{labels: labels, tail: r.tail}
}

// Union returns the row holding the labels of both rows.
// Only one of the two rows may be open, since a row has a single tail.
func (r *Row) Union(other *Row) (*Row, error) {
	labelsA, tailA := r.Flatten()
	labelsB, tailB := other.Flatten()
	if tailA != nil && tailB != nil && tailA != tailB {
		return nil, fmt.Errorf("cannot take the union of two rows with distinct open tails %v and %v", tailA, tailB)
	}
	tail := tailA
	if tail == nil {
		tail = tailB
	}
	union := util.SortedUnion(labelsA, labelsB, capabilityLess)
	if tail == nil {
		return ClosedRow(union...), nil
	}
	return OpenRow(tail, union...), nil
}
