package types

import (
	"github.com/cottand/effy/util"
)

// Subtype reports whether sub can be used where super is expected, resolving
// unification variables on either side as needed.
//
// Arrows are contravariant in their argument and covariant in their result.
// A PureArrow is a subtype of an EffArrow with any latent effect, but never the reverse.
// When the answer is false, every resolution performed while deciding it is rolled back.
func (f *Fresher) Subtype(sub, super Type) bool {
	return f.speculate(func() bool { return f.subtype(sub, super) })
}

// Subeffect reports whether every effect of sub is permitted by super.
//
// Labels of sub missing from super may be absorbed by super's open tail, and an
// open tail of sub is resolved to the labels super has left over.
func (f *Fresher) Subeffect(sub, super *Row) bool {
	return f.speculate(func() bool { return f.subeffect(sub, super) })
}

func (f *Fresher) subtype(sub, super Type) bool {
	sub, super = Resolve(sub), Resolve(super)
	if sub == super {
		return true
	}
	if v, ok := sub.(*Var); ok {
		return f.Bind(v, super) == nil
	}
	if v, ok := super.(*Var); ok {
		return f.Bind(v, sub) == nil
	}

	switch sub := sub.(type) {
	case Unit:
		_, ok := super.(Unit)
		return ok

	case *PureArrow:
		switch super := super.(type) {
		case *PureArrow:
			return f.subtype(super.Arg, sub.Arg) && f.subtype(sub.Result, super.Result)
		case *EffArrow:
			return f.subtype(super.Arg, sub.Arg) && f.subtype(sub.Result, super.Result)
		}

	case *EffArrow:
		if super, ok := super.(*EffArrow); ok {
			return f.subtype(super.Arg, sub.Arg) &&
				f.subtype(sub.Result, super.Result) &&
				f.subeffect(sub.Effect, super.Effect)
		}

	case *Row:
		if super, ok := super.(*Row); ok {
			return f.subeffect(sub, super)
		}
	}
	return false
}

func (f *Fresher) subeffect(sub, super *Row) bool {
	subLabels, subTail := sub.Flatten()
	superLabels, superTail := super.Flatten()

	missing := util.SortedDiff(subLabels, superLabels, capabilityLess)
	if len(missing) > 0 {
		if superTail == nil {
			return false
		}
		extension := OpenRow(f.NewVar(KindRow, superTail.level), missing...)
		if err := f.Bind(superTail, extension); err != nil {
			return false
		}
		// superTail may also have been the tail of sub, so flatten both again
		return f.subeffect(sub, super)
	}

	if subTail == nil || subTail == superTail {
		return true
	}
	rest := util.SortedDiff(superLabels, subLabels, capabilityLess)
	if superTail == nil {
		return f.Bind(subTail, ClosedRow(rest...)) == nil
	}
	return f.Bind(subTail, OpenRow(superTail, rest...)) == nil
}
