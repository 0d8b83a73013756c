package types

import (
	"github.com/cottand/effy/util"
	"github.com/pkg/errors"
)

// Fresher mints unification variables and capabilities, and records
// variable resolutions so that speculative checks can be rolled back.
//
// A single Fresher is shared by every scope of one inference run.
// It is mutable and not suitable for concurrent use.
type Fresher struct {
	counts [kindCount]uint64

	trail       util.Stack[trailEntry]
	speculating int
}

type trailEntry struct {
	v     *Var
	link  Type
	level Level
}

func NewFresher() *Fresher {
	return &Fresher{}
}

// NewVar creates an unresolved variable of the given kind at the given level.
// Capabilities are labels rather than variables, use NewCapability for those.
func (f *Fresher) NewVar(kind Kind, level Level) *Var {
	if kind == KindCapability {
		panic("capabilities are minted with NewCapability, not NewVar")
	}
	v := &Var{id: f.counts[kind], kind: kind, level: level}
	f.counts[kind]++
	return v
}

// NewRow creates an open row with a fresh tail and no labels.
func (f *Fresher) NewRow(level Level) *Row {
	return OpenRow(f.NewVar(KindRow, level))
}

func (f *Fresher) NewCapability(name string) *Capability {
	if name == "" {
		name = "cap"
	}
	c := &Capability{id: f.counts[KindCapability], name: name}
	f.counts[KindCapability]++
	return c
}

// Count returns how many entities of kind k were minted so far.
func (f *Fresher) Count(k Kind) uint64 { return f.counts[k] }

func (f *Fresher) record(v *Var) {
	if f.speculating > 0 {
		f.trail.Push(trailEntry{v: v, link: v.link, level: v.level})
	}
}

// speculate runs body, undoing every resolution it performed when it returns false.
func (f *Fresher) speculate(body func() bool) bool {
	start := f.trail.Len()
	f.speculating++
	ok := body()
	f.speculating--
	if !ok {
		for f.trail.Len() > start {
			entry, _ := f.trail.Pop()
			entry.v.link, entry.v.level = entry.link, entry.level
		}
	}
	if f.speculating == 0 {
		f.trail.PopAll()
	}
	return ok
}

func (f *Fresher) setLevel(v *Var, level Level) {
	f.record(v)
	v.level = level
}

// Bind resolves v to t. Variables are write-once: binding an already resolved
// or a generic variable is a defect of the caller.
func (f *Fresher) Bind(v *Var, t Type) error {
	switch {
	case v.link != nil:
		return errors.Errorf("variable %v is already resolved to %v", v, v.link)
	case v.level == GenericLevel:
		return errors.Errorf("generic variable %v must be instantiated before it is resolved", v)
	}
	t = Resolve(t)
	if t == Type(v) {
		return nil
	}
	if t.Kind() != v.kind {
		return errors.Errorf("cannot resolve %v variable %v to %v of kind %v", v.kind, v, t, t.Kind())
	}
	if err := f.occursAdjustLevels(v, t); err != nil {
		return err
	}
	f.record(v)
	v.link = t
	return nil
}

// occursAdjustLevels fails when v occurs in t, and otherwise lowers the level of
// every unresolved variable in t to v's level, so that they are not generalized
// at a deeper let than v could be.
//
// This follows the sound_eager algorithm of "Efficient Generalization with Levels".
func (f *Fresher) occursAdjustLevels(v *Var, t Type) error {
	switch t := t.(type) {
	case *Var:
		if t.link != nil {
			return f.occursAdjustLevels(v, t.link)
		}
		if t == v {
			return errors.Errorf("variable %v occurs in the type it is resolved to", v)
		}
		if t.level == GenericLevel {
			return errors.Errorf("generic variable %v must be instantiated before resolution", t)
		}
		if t.level > v.level {
			f.setLevel(t, v.level)
		}
		return nil
	case *PureArrow:
		if err := f.occursAdjustLevels(v, t.Arg); err != nil {
			return err
		}
		return f.occursAdjustLevels(v, t.Result)
	case *EffArrow:
		if err := f.occursAdjustLevels(v, t.Arg); err != nil {
			return err
		}
		if err := f.occursAdjustLevels(v, t.Result); err != nil {
			return err
		}
		return f.occursAdjustLevels(v, t.Effect)
	case *Row:
		if t.tail == nil {
			return nil
		}
		return f.occursAdjustLevels(v, t.tail)
	default:
		return nil
	}
}
