package expr

import (
	"fmt"
	"strings"
)

// NameLookup resolves a SymbolId to a display name for String.
type NameLookup func(id SymbolId) string

// String renders e using names to resolve symbol terminals, eliding
// parentheses between clauses of the same associative operator the way a
// hand-written Kconfig dependency expression would be written.
func String(e Expr, names NameLookup) string {
	return render(e, names, 0)
}

// precedence levels, lowest binds loosest: Or < And < Not < atom.
const (
	precOr = iota
	precAnd
	precNot
	precAtom
)

func render(e Expr, names NameLookup, parentPrec int) string {
	switch n := e.(type) {
	case ConstExpr:
		if n.Value {
			return "y"
		}

		return "n"
	case TerminalExpr:
		return renderTerminal(n.T, names)
	case NotExpr:
		s := "!" + render(n.X, names, precNot)
		return wrap(s, precNot, parentPrec)
	case AndExpr:
		parts := make([]string, 0, 2)
		for _, c := range AndClauses(e) {
			parts = append(parts, render(c, names, precAnd))
		}

		s := strings.Join(parts, " && ")
		return wrap(s, precAnd, parentPrec)
	case OrExpr:
		parts := make([]string, 0, 2)
		for _, c := range OrClauses(e) {
			parts = append(parts, render(c, names, precOr))
		}

		s := strings.Join(parts, " || ")
		return wrap(s, precOr, parentPrec)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func wrap(s string, ownPrec, parentPrec int) string {
	if ownPrec < parentPrec {
		return "(" + s + ")"
	}

	return s
}

func renderTerminal(t Terminal, names NameLookup) string {
	name := func(id SymbolId) string {
		if names == nil {
			return fmt.Sprintf("<%d>", id)
		}

		return names(id)
	}

	switch n := t.(type) {
	case SymbolTerm:
		return name(n.Id)
	case EqTerm:
		return name(n.A) + "=" + name(n.B)
	case NeqTerm:
		return name(n.A) + "!=" + name(n.B)
	case LthTerm:
		return name(n.A) + "<" + name(n.B)
	case LeqTerm:
		return name(n.A) + "<=" + name(n.B)
	case GthTerm:
		return name(n.A) + ">" + name(n.B)
	case GeqTerm:
		return name(n.A) + ">=" + name(n.B)
	default:
		return fmt.Sprintf("<%T>", t)
	}
}
