package types

// Shape is the outcome of decomposing a type into an arrow.
type Shape uint8

const (
	ShapeNotArrow Shape = iota
	ShapePureArrow
	ShapeEffArrow
)

func (s Shape) String() string {
	switch s {
	case ShapePureArrow:
		return "pure arrow"
	case ShapeEffArrow:
		return "effectful arrow"
	default:
		return "not an arrow"
	}
}

// Decomposition is a type seen as a function type. Effect is only set for ShapeEffArrow.
type Decomposition struct {
	Shape  Shape
	Arg    Type
	Result Type
	Effect *Row
}

// DecomposeInferred views the inferred type of a callee as an arrow.
//
// An unresolved variable is resolved to an effectful arrow over fresh variables
// at the variable's own level, since nothing is known about what calling it does.
func (f *Fresher) DecomposeInferred(t Type) Decomposition {
	return f.decompose(t, nil)
}

// DecomposeExpected views an expected type as an arrow, for checking a function
// literal against it. An unresolved variable is resolved to an effectful arrow
// over fresh variables minted at the checking site's level.
func (f *Fresher) DecomposeExpected(t Type, level Level) Decomposition {
	return f.decompose(t, &level)
}

func (f *Fresher) decompose(t Type, at *Level) Decomposition {
	switch t := Resolve(t).(type) {
	case *PureArrow:
		return Decomposition{Shape: ShapePureArrow, Arg: t.Arg, Result: t.Result}
	case *EffArrow:
		return Decomposition{Shape: ShapeEffArrow, Arg: t.Arg, Result: t.Result, Effect: t.Effect}
	case *Var:
		if t.kind != KindValue || t.level == GenericLevel {
			return Decomposition{Shape: ShapeNotArrow}
		}
		level := t.level
		if at != nil && *at < level {
			level = *at
		}
		arrow := &EffArrow{
			Arg:    f.NewVar(KindValue, level),
			Result: f.NewVar(KindValue, level),
			Effect: f.NewRow(level),
		}
		if err := f.Bind(t, arrow); err != nil {
			return Decomposition{Shape: ShapeNotArrow}
		}
		return Decomposition{Shape: ShapeEffArrow, Arg: arrow.Arg, Result: arrow.Result, Effect: arrow.Effect}
	default:
		return Decomposition{Shape: ShapeNotArrow}
	}
}
