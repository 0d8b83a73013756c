package types

// Kind distinguishes what a type-level entity may stand for.
type Kind uint8

const (
	// KindValue is the kind of types of values (unit, functions).
	KindValue Kind = iota
	// KindRow is the kind of effect rows.
	KindRow
	// KindCapability is the kind of a single effect label installed by a handler.
	KindCapability

	kindCount = int(KindCapability) + 1
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindRow:
		return "row"
	case KindCapability:
		return "capability"
	default:
		return "invalid"
	}
}
