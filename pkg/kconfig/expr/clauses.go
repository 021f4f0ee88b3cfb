package expr

// OrClauses returns a left-to-right flattening of the top-level Or structure
// of e. A non-Or expression flattens to the singleton []Expr{e}.
func OrClauses(e Expr) []Expr {
	if or, ok := e.(OrExpr); ok {
		return append(OrClauses(or.A), OrClauses(or.B)...)
	}

	return []Expr{e}
}

// AndClauses returns a left-to-right flattening of the top-level And
// structure of e. A non-And expression flattens to the singleton []Expr{e}.
func AndClauses(e Expr) []Expr {
	if and, ok := e.(AndExpr); ok {
		return append(AndClauses(and.A), AndClauses(and.B)...)
	}

	return []Expr{e}
}
