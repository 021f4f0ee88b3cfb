package expr

import "fmt"

// RawKind tags a RawNode the way the native Kconfig expression tree tags its
// nodes (E_OR, E_AND, E_NOT, E_EQUAL, ...). Raw trees are what a real native
// bridge would hand the engine before conversion into Expr; MemoryBridge
// builds Expr directly, but RawNode/Convert exist so the conversion boundary
// from a native tree is implemented and testable on its own.
type RawKind int

// The raw node kinds recognised by Convert. List and Range occur in the
// source schema but are unsupported here.
const (
	RawConstTrue RawKind = iota
	RawConstFalse
	RawNot
	RawAnd
	RawOr
	RawSymbol
	RawEq
	RawNeq
	RawLth
	RawLeq
	RawGth
	RawGeq
	RawList
	RawRange
)

// RawNode is a single node of a raw (pre-conversion) expression tree.
type RawNode struct {
	Kind RawKind
	// Left is the sole operand of RawNot, and the left operand of RawAnd/RawOr.
	Left *RawNode
	// Right is the right operand of RawAnd/RawOr.
	Right *RawNode
	// A and B carry the symbol operand(s) for RawSymbol and the comparison kinds.
	A, B *SymbolId
}

// ExprConvertErrorKind enumerates why Convert failed.
type ExprConvertErrorKind int

// The taxonomy of conversion failures.
const (
	ConvertNone ExprConvertErrorKind = iota
	ConvertNullExpr
	ConvertNullSymbol
	ConvertList
	ConvertRange
)

// ExprConvertError reports a failure to convert a raw node into an Expr.
type ExprConvertError struct {
	Kind ExprConvertErrorKind
}

// Error implements the error interface.
func (e *ExprConvertError) Error() string {
	switch e.Kind {
	case ConvertNone:
		return "expression conversion failed: node was absent (None)"
	case ConvertNullExpr:
		return "expression conversion failed: encountered a null expression pointer"
	case ConvertNullSymbol:
		return "expression conversion failed: encountered a null symbol pointer"
	case ConvertList:
		return "expression conversion failed: List expressions are unsupported"
	case ConvertRange:
		return "expression conversion failed: Range expressions are unsupported"
	default:
		return fmt.Sprintf("expression conversion failed: unknown error kind %d", e.Kind)
	}
}

// Convert structurally converts a raw expression tree into an Expr. A nil
// node converts to an error of kind ConvertNone; this lets callers express
// "no expression present" uniformly with genuine conversion failures deeper
// in the tree: a None-typed or null-pointer node always fails with
// ExprConvertError rather than being treated as a silent default.
func Convert(n *RawNode) (Expr, error) {
	if n == nil {
		return nil, &ExprConvertError{ConvertNone}
	}

	return convertNode(n)
}

func convertNode(n *RawNode) (Expr, error) {
	switch n.Kind {
	case RawConstTrue:
		return Const(true), nil
	case RawConstFalse:
		return Const(false), nil
	case RawNot:
		if n.Left == nil {
			return nil, &ExprConvertError{ConvertNullExpr}
		}

		x, err := convertNode(n.Left)
		if err != nil {
			return nil, err
		}

		return Not(x), nil
	case RawAnd, RawOr:
		if n.Left == nil || n.Right == nil {
			return nil, &ExprConvertError{ConvertNullExpr}
		}

		a, err := convertNode(n.Left)
		if err != nil {
			return nil, err
		}

		b, err := convertNode(n.Right)
		if err != nil {
			return nil, err
		}

		if n.Kind == RawAnd {
			return And(a, b), nil
		}

		return Or(a, b), nil
	case RawSymbol:
		if n.A == nil {
			return nil, &ExprConvertError{ConvertNullSymbol}
		}

		return Sym(*n.A), nil
	case RawEq, RawNeq, RawLth, RawLeq, RawGth, RawGeq:
		if n.A == nil || n.B == nil {
			return nil, &ExprConvertError{ConvertNullSymbol}
		}

		return NewTerminal(comparisonTerminal(n.Kind, *n.A, *n.B)), nil
	case RawList:
		return nil, &ExprConvertError{ConvertList}
	case RawRange:
		return nil, &ExprConvertError{ConvertRange}
	default:
		return nil, &ExprConvertError{ConvertNullExpr}
	}
}

func comparisonTerminal(kind RawKind, a, b SymbolId) Terminal {
	switch kind {
	case RawEq:
		return EqTerm{a, b}
	case RawNeq:
		return NeqTerm{a, b}
	case RawLth:
		return LthTerm{a, b}
	case RawLeq:
		return LeqTerm{a, b}
	case RawGth:
		return GthTerm{a, b}
	default:
		return GeqTerm{a, b}
	}
}
