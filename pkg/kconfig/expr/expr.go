package expr

// SymbolId is an engine-owned integer handle over a schema symbol, used in
// place of the native bridge's raw symbol pointers.
type SymbolId uint32

// Expr is the recursive dependency-expression tree:
//
//	Expr ::= Const(bool) | Not(Expr) | And(Expr,Expr) | Or(Expr,Expr) | Terminal(T)
//
// Values are immutable once constructed.
type Expr interface {
	// isExpr restricts implementations of Expr to this package.
	isExpr()
}

// ConstExpr is a constant true/false expression.
type ConstExpr struct{ Value bool }

// NotExpr negates its operand.
type NotExpr struct{ X Expr }

// AndExpr is a binary conjunction.
type AndExpr struct{ A, B Expr }

// OrExpr is a binary disjunction.
type OrExpr struct{ A, B Expr }

// TerminalExpr wraps a Terminal as a leaf expression.
type TerminalExpr struct{ T Terminal }

func (ConstExpr) isExpr()    {}
func (NotExpr) isExpr()      {}
func (AndExpr) isExpr()      {}
func (OrExpr) isExpr()       {}
func (TerminalExpr) isExpr() {}

// Const constructs a constant expression.
func Const(b bool) Expr { return ConstExpr{b} }

// Not constructs a negation.
func Not(e Expr) Expr { return NotExpr{e} }

// And constructs a binary conjunction.
func And(a, b Expr) Expr { return AndExpr{a, b} }

// Or constructs a binary disjunction.
func Or(a, b Expr) Expr { return OrExpr{a, b} }

// NewTerminal wraps a Terminal as an Expr.
func NewTerminal(t Terminal) Expr { return TerminalExpr{t} }

// Sym is shorthand for a bare symbol terminal expression.
func Sym(id SymbolId) Expr { return NewTerminal(SymbolTerm{id}) }

// Terminal is the leaf comparison/reference form of an expression.
//
//	T ::= Symbol(Sym) | Eq(Sym,Sym) | Neq(Sym,Sym) | Lth | Leq | Gth | Geq
type Terminal interface {
	isTerminal()
}

// SymbolTerm is a bare reference to a symbol's own tristate value.
type SymbolTerm struct{ Id SymbolId }

// EqTerm is an equality comparison between two symbols.
type EqTerm struct{ A, B SymbolId }

// NeqTerm is an inequality comparison between two symbols.
type NeqTerm struct{ A, B SymbolId }

// LthTerm is a less-than comparison between two symbols.
type LthTerm struct{ A, B SymbolId }

// LeqTerm is a less-than-or-equal comparison between two symbols.
type LeqTerm struct{ A, B SymbolId }

// GthTerm is a greater-than comparison between two symbols.
type GthTerm struct{ A, B SymbolId }

// GeqTerm is a greater-than-or-equal comparison between two symbols.
type GeqTerm struct{ A, B SymbolId }

func (SymbolTerm) isTerminal() {}
func (EqTerm) isTerminal()     {}
func (NeqTerm) isTerminal()    {}
func (LthTerm) isTerminal()    {}
func (LeqTerm) isTerminal()    {}
func (GthTerm) isTerminal()    {}
func (GeqTerm) isTerminal()    {}
