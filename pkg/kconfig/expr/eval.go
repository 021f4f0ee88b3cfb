package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment supplies the per-symbol facts Eval needs without requiring
// this package to depend on the Symbol Model (which in turn depends on
// this package).
type Environment interface {
	// Tristate returns the current tristate value of a symbol.
	Tristate(id SymbolId) Tristate
	// IsTristateCompatible reports whether a symbol's declared type is
	// Boolean or Tristate (comparable as tristates).
	IsTristateCompatible(id SymbolId) bool
	// IsNumericCompatible reports whether a symbol's declared type is Int,
	// Hex, or Unknown (comparable as parsed u64 strings).
	IsNumericCompatible(id SymbolId) bool
	// NumericString returns the canonical string rendering used to compare
	// a numeric-compatible symbol (decimal for Int, "0x"-prefixed for Hex).
	NumericString(id SymbolId) string
	// Name returns a human-readable name for diagnostics; ok is false for
	// unnamed (CHOICE) symbols.
	Name(id SymbolId) (string, bool)
}

// InvalidTerminalError reports a comparison terminal whose operands are
// neither both tristate-compatible nor both numeric-compatible.
type InvalidTerminalError struct {
	Terminal Terminal
}

// Error implements the error interface.
func (e *InvalidTerminalError) Error() string {
	return "invalid terminal: operands are not comparison-compatible"
}

// InvalidIntegerSymbolError reports a numeric-compatible symbol whose
// current string value could not be parsed as an integer.
type InvalidIntegerSymbolError struct {
	Symbol SymbolId
}

// Error implements the error interface.
func (e *InvalidIntegerSymbolError) Error() string {
	return fmt.Sprintf("symbol %d: current value is not a valid integer", e.Symbol)
}

// Eval evaluates an expression to a Tristate under the given environment.
//
//	eval(Const(b))      = lift(b)
//	eval(And(a,b))      = min(eval(a), eval(b))
//	eval(Or(a,b))       = max(eval(a), eval(b))
//	eval(Not(a))        = invert(eval(a))
//	eval(Terminal(sym))  = sym.current_tristate
func Eval(e Expr, env Environment) (Tristate, error) {
	switch n := e.(type) {
	case ConstExpr:
		return Bool(n.Value), nil
	case NotExpr:
		v, err := Eval(n.X, env)
		if err != nil {
			return No, err
		}

		return v.Invert(), nil
	case AndExpr:
		a, err := Eval(n.A, env)
		if err != nil {
			return No, err
		}

		b, err := Eval(n.B, env)
		if err != nil {
			return No, err
		}

		return Min(a, b), nil
	case OrExpr:
		a, err := Eval(n.A, env)
		if err != nil {
			return No, err
		}

		b, err := Eval(n.B, env)
		if err != nil {
			return No, err
		}

		return Max(a, b), nil
	case TerminalExpr:
		return evalTerminal(n.T, env)
	default:
		return No, fmt.Errorf("eval: unknown expression node %T", e)
	}
}

func evalTerminal(t Terminal, env Environment) (Tristate, error) {
	switch n := t.(type) {
	case SymbolTerm:
		return env.Tristate(n.Id), nil
	case EqTerm:
		return evalComparison(t, n.A, n.B, env, func(c int) bool { return c == 0 })
	case NeqTerm:
		return evalComparison(t, n.A, n.B, env, func(c int) bool { return c != 0 })
	case LthTerm:
		return evalComparison(t, n.A, n.B, env, func(c int) bool { return c < 0 })
	case LeqTerm:
		return evalComparison(t, n.A, n.B, env, func(c int) bool { return c <= 0 })
	case GthTerm:
		return evalComparison(t, n.A, n.B, env, func(c int) bool { return c > 0 })
	case GeqTerm:
		return evalComparison(t, n.A, n.B, env, func(c int) bool { return c >= 0 })
	default:
		return No, fmt.Errorf("eval: unknown terminal %T", t)
	}
}

func evalComparison(t Terminal, a, b SymbolId, env Environment, cmp func(int) bool) (Tristate, error) {
	switch {
	case env.IsTristateCompatible(a) && env.IsTristateCompatible(b):
		ta, tb := env.Tristate(a), env.Tristate(b)
		return Bool(cmp(int(ta) - int(tb))), nil
	case env.IsNumericCompatible(a) && env.IsNumericCompatible(b):
		va, err := parseNumeric(env.NumericString(a))
		if err != nil {
			return No, &InvalidIntegerSymbolError{a}
		}

		vb, err := parseNumeric(env.NumericString(b))
		if err != nil {
			return No, &InvalidIntegerSymbolError{b}
		}

		switch {
		case va < vb:
			return Bool(cmp(-1)), nil
		case va > vb:
			return Bool(cmp(1)), nil
		default:
			return Bool(cmp(0)), nil
		}
	default:
		return No, &InvalidTerminalError{t}
	}
}

func parseNumeric(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}

	return strconv.ParseUint(s, 10, 64)
}
