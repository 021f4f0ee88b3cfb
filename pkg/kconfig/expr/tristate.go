// Package expr implements the boolean/tristate dependency-expression algebra
// over Kconfig symbols: construction from raw (native-bridge-shaped) nodes,
// structural decomposition into top-level clauses, evaluation, and display.
package expr

import "fmt"

// Tristate is the ordered three-valued domain used both as a symbol's value
// and as the truth value of a dependency expression.
type Tristate uint8

// The tristate domain, ordered No < Mod < Yes.
const (
	No Tristate = iota
	Mod
	Yes
)

// Invert flips a tristate: No<->Yes, Mod stays Mod.
func (t Tristate) Invert() Tristate {
	switch t {
	case No:
		return Yes
	case Yes:
		return No
	default:
		return Mod
	}
}

// Bool lifts a boolean into the tristate domain: true -> Yes, false -> No.
func Bool(b bool) Tristate {
	if b {
		return Yes
	}

	return No
}

// Char renders a tristate as its single-character form, "n", "m" or "y".
func (t Tristate) Char() byte {
	switch t {
	case No:
		return 'n'
	case Mod:
		return 'm'
	default:
		return 'y'
	}
}

// String implements fmt.Stringer.
func (t Tristate) String() string {
	return string(t.Char())
}

// ParseTristate parses a single-character "n", "m" or "y" into a Tristate.
func ParseTristate(s string) (Tristate, error) {
	switch s {
	case "n":
		return No, nil
	case "m":
		return Mod, nil
	case "y":
		return Yes, nil
	default:
		return No, fmt.Errorf("invalid tristate literal %q", s)
	}
}

// Min returns the smaller of two tristates (used to evaluate And).
func Min(a, b Tristate) Tristate {
	if a < b {
		return a
	}

	return b
}

// Max returns the larger of two tristates (used to evaluate Or).
func Max(a, b Tristate) Tristate {
	if a > b {
		return a
	}

	return b
}
