package kconfig

import "github.com/oddlama/kconfig-engine/pkg/kconfig/expr"

// Tristate and SymbolId are re-exported from expr so callers of this
// package never need to import expr directly for the common case.
type (
	Tristate = expr.Tristate
	SymbolId = expr.SymbolId
	Expr     = expr.Expr
)

// The tristate domain, re-exported for convenience.
const (
	No  = expr.No
	Mod = expr.Mod
	Yes = expr.Yes
)

// ParseTristate is re-exported from expr for convenience.
func ParseTristate(s string) (Tristate, error) { return expr.ParseTristate(s) }

// Bool is re-exported from expr for convenience.
func Bool(b bool) Tristate { return expr.Bool(b) }
