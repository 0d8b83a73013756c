package ast

var (
	_ TypeAnn = (*UnitAnn)(nil)
	_ TypeAnn = (*VarAnn)(nil)
	_ TypeAnn = (*PureArrowAnn)(nil)
	_ TypeAnn = (*EffArrowAnn)(nil)
)

// UnitAnn is the annotation `unit`.
type UnitAnn struct {
	Range
}

func (t *UnitAnn) typeAnnNode() {}
func (t *UnitAnn) Hash() uint64 { return hashNode("UnitAnn", nil, t.Range) }

// VarAnn names a type variable, generalized when it appears in a prelude declaration.
type VarAnn struct {
	Range
	Name string
}

func (t *VarAnn) typeAnnNode() {}
func (t *VarAnn) Hash() uint64 { return hashNode("VarAnn", []string{t.Name}, t.Range) }

// PureArrowAnn is the annotation `Arg -> Result`.
type PureArrowAnn struct {
	Range
	Arg, Result TypeAnn
}

func (t *PureArrowAnn) typeAnnNode() {}
func (t *PureArrowAnn) Hash() uint64 {
	return hashNode("PureArrowAnn", nil, t.Range, t.Arg, t.Result)
}

// EffArrowAnn is the annotation `Arg ->{Effect | Tail} Result`.
// An empty Tail means the latent effect is closed.
type EffArrowAnn struct {
	Range
	Arg, Result TypeAnn
	Effect      []string
	Tail        string
}

func (t *EffArrowAnn) typeAnnNode() {}
func (t *EffArrowAnn) Hash() uint64 {
	return hashNode("EffArrowAnn", append(append([]string{}, t.Effect...), t.Tail), t.Range, t.Arg, t.Result)
}
