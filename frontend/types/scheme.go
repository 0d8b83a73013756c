package types

// Scheme is a type optionally generalized over universally quantified parameters.
type Scheme struct {
	Params []*Var
	Body   Type
}

// Mono wraps t in a scheme without quantified parameters.
func Mono(t Type) Scheme { return Scheme{Body: t} }

func (s Scheme) IsMono() bool { return len(s.Params) == 0 }

func (s Scheme) String() string { return SchemeString(s) }

// Purity is the bottom-up classification of whether an expression provably
// performs no effect and terminates.
type Purity uint8

const (
	Pure Purity = iota
	Impure
)

// Join is Pure only when both sides are.
func Join(a, b Purity) Purity {
	if a == Pure && b == Pure {
		return Pure
	}
	return Impure
}

func (p Purity) String() string {
	if p == Pure {
		return "pure"
	}
	return "impure"
}
