package kconfig

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// SolverConfig configures a call to Satisfy.
type SolverConfig struct {
	DesiredValue Tristate
	Recursive    bool
}

// Assignment is one (symbol name, tristate) pair in a satisfier's output.
type Assignment struct {
	Name  string
	Value Tristate
}

// SolveErrorKind enumerates why the satisfier failed.
type SolveErrorKind int

// The SolveError taxonomy.
const (
	SolveUnsatisfiable SolveErrorKind = iota
	SolveComplexNot
	SolveUnsupportedConstituents
	SolveAmbiguousComparison
	SolveInvalidSymbol
	SolveInvalidExpression
	SolveRequiresModForBoolean
	SolveConflictingAssignment
	SolveAmbiguousSolution
)

// SolveError is returned by Satisfy.
type SolveError struct {
	Kind SolveErrorKind

	Symbol SymbolId
	// A, B are the conflicting values for ConflictingAssignment.
	A, B Tristate
	// Symbols names every symbol involved in an AmbiguousSolution, and the
	// display forms of the competing clauses for a single-symbol ambiguity.
	Symbols []SymbolId
	Clauses []string
}

// Error implements the error interface.
func (e *SolveError) Error() string {
	switch e.Kind {
	case SolveUnsatisfiable:
		return "unsatisfiable constraint"
	case SolveComplexNot:
		return "negation of a non-terminal expression is unsupported"
	case SolveUnsupportedConstituents:
		return "expression contains unsupported comparison terminals"
	case SolveAmbiguousComparison:
		return "comparison between two non-constant symbols is ambiguous"
	case SolveInvalidSymbol:
		return fmt.Sprintf("symbol %d is not a valid satisfier target", e.Symbol)
	case SolveInvalidExpression:
		return "invalid expression encountered during satisfy"
	case SolveRequiresModForBoolean:
		return fmt.Sprintf("symbol %d: Mod cannot be assigned to a boolean symbol", e.Symbol)
	case SolveConflictingAssignment:
		return fmt.Sprintf("symbol %d: conflicting assignments %s and %s", e.Symbol, e.A, e.B)
	case SolveAmbiguousSolution:
		return fmt.Sprintf("ambiguous solution involving %d symbol(s)", len(e.Symbols))
	default:
		return "satisfy failed"
	}
}

// ambiguity records an unresolved reverse-dependency disjunct choice.
type ambiguity struct {
	symbol  SymbolId
	clauses []string
}

// effectiveConstraint builds the per-symbol constraint expression E that,
// if eval(E) >= desired, means the symbol is already assumable at desired.
func effectiveConstraint(s *Schema, id SymbolId) (Expr, *ambiguity) {
	sym := s.Symbol(id)
	e := sym.VisibilityExpression()

	if sym.PromptCount() != 0 {
		return e, nil
	}

	rev := sym.ReverseDependencies()

	if isAbsentReverseDeps(rev) {
		return expr.And(e, expr.Const(true)), nil
	}

	clauses := expr.OrClauses(rev)

	switch len(clauses) {
	case 0:
		return expr.And(e, expr.Const(true)), nil
	case 1:
		return expr.And(e, clauses[0]), nil
	default:
		a := &ambiguity{symbol: id, clauses: s.displayClauses(clauses)}
		return expr.And(e, expr.Const(true)), a
	}
}

// walk is the SimpleSolver: it recursively satisfies e against desired.
func walk(s *Schema, e Expr, desired Tristate) (map[SymbolId]Tristate, error) {
	v, err := expr.Eval(e, s)
	if err == nil && v >= desired {
		return map[SymbolId]Tristate{}, nil
	}

	switch n := e.(type) {
	case expr.ConstExpr:
		if n.Value {
			return map[SymbolId]Tristate{}, nil
		}

		return nil, &SolveError{Kind: SolveUnsatisfiable}
	case expr.AndExpr:
		a, err := walk(s, n.A, desired)
		if err != nil {
			return nil, err
		}

		b, err := walk(s, n.B, desired)
		if err != nil {
			return nil, err
		}

		return mergeAssignments(a, b)
	case expr.OrExpr:
		a, errA := walk(s, n.A, desired)
		if errA == nil {
			return a, nil
		}

		return walk(s, n.B, desired)
	case expr.NotExpr:
		return walkNot(s, n.X, desired)
	case expr.TerminalExpr:
		return walkTerminal(s, n.T, desired)
	default:
		return nil, &SolveError{Kind: SolveInvalidExpression}
	}
}

func walkNot(s *Schema, inner Expr, desired Tristate) (map[SymbolId]Tristate, error) {
	term, ok := inner.(expr.TerminalExpr)
	if !ok {
		return nil, &SolveError{Kind: SolveComplexNot}
	}

	switch t := term.T.(type) {
	case expr.EqTerm:
		sym, val, ok := constPair(s, t.A, t.B)
		if !ok {
			return nil, &SolveError{Kind: SolveAmbiguousComparison}
		}

		return satisfyNeq(s, sym, val, desired)
	case expr.NeqTerm:
		sym, val, ok := constPair(s, t.A, t.B)
		if !ok {
			return nil, &SolveError{Kind: SolveAmbiguousComparison}
		}

		return satisfyEq(s, sym, val)
	case expr.SymbolTerm:
		return satisfyEq(s, t.Id, No)
	default:
		return nil, &SolveError{Kind: SolveComplexNot}
	}
}

func walkTerminal(s *Schema, t expr.Terminal, desired Tristate) (map[SymbolId]Tristate, error) {
	switch n := t.(type) {
	case expr.SymbolTerm:
		if s.bridge.Type(n.Id) == Boolean {
			desired = Yes
		}

		return satisfyNeq(s, n.Id, No, desired)
	case expr.EqTerm:
		sym, val, ok := constPair(s, n.A, n.B)
		if !ok {
			return nil, &SolveError{Kind: SolveAmbiguousComparison}
		}

		return satisfyEq(s, sym, val)
	case expr.NeqTerm:
		sym, val, ok := constPair(s, n.A, n.B)
		if !ok {
			return nil, &SolveError{Kind: SolveAmbiguousComparison}
		}

		return satisfyNeq(s, sym, val, desired)
	default:
		return nil, &SolveError{Kind: SolveUnsupportedConstituents}
	}
}

// constPair splits a comparison pair into (non-const symbol, const
// symbol's tristate value), succeeding only when exactly one side is a
// CONST symbol.
func constPair(s *Schema, a, b SymbolId) (SymbolId, Tristate, bool) {
	aConst := s.bridge.Flags(a).IsConst()
	bConst := s.bridge.Flags(b).IsConst()

	switch {
	case aConst && !bConst:
		return b, s.bridge.GetTristate(a), true
	case bConst && !aConst:
		return a, s.bridge.GetTristate(b), true
	default:
		return 0, No, false
	}
}

func satisfyEq(s *Schema, sym SymbolId, v Tristate) (map[SymbolId]Tristate, error) {
	if v == Mod && s.bridge.Type(sym) != TristateType {
		return nil, &SolveError{Kind: SolveRequiresModForBoolean, Symbol: sym}
	}

	return map[SymbolId]Tristate{sym: v}, nil
}

func satisfyNeq(s *Schema, sym SymbolId, v, desired Tristate) (map[SymbolId]Tristate, error) {
	var assign Tristate

	switch v {
	case No:
		assign = desired
	case Mod:
		assign = Yes
	default:
		assign = Mod
	}

	if assign == Mod && s.bridge.Type(sym) != TristateType {
		return nil, &SolveError{Kind: SolveRequiresModForBoolean, Symbol: sym}
	}

	return map[SymbolId]Tristate{sym: assign}, nil
}

func mergeAssignments(a, b map[SymbolId]Tristate) (map[SymbolId]Tristate, error) {
	out := make(map[SymbolId]Tristate, len(a)+len(b))

	for k, v := range a {
		out[k] = v
	}

	for k, v := range b {
		if existing, ok := out[k]; ok && existing != v {
			return nil, &SolveError{Kind: SolveConflictingAssignment, Symbol: k, A: existing, B: v}
		}

		out[k] = v
	}

	return out, nil
}

// satisfy is the entry point for Symbol.Satisfy; it dispatches to the
// single-pass or recursive algorithm and reports AmbiguousSolution if any
// per-symbol constraint recorded an ambiguous reverse-dependency choice.
func satisfy(s *Schema, id SymbolId, cfg SolverConfig) ([]Assignment, error) {
	if cfg.Recursive {
		return satisfyRecursive(s, id, cfg.DesiredValue)
	}

	e, amb := effectiveConstraint(s, id)

	m, err := walk(s, e, cfg.DesiredValue)
	if err != nil {
		return nil, err
	}

	if amb != nil {
		log.Debugf("satisfy: ambiguous reverse dependency for symbol %d: %v", amb.symbol, amb.clauses)
		return nil, &SolveError{Kind: SolveAmbiguousSolution, Symbols: []SymbolId{amb.symbol}, Clauses: amb.clauses}
	}

	return orderedAssignments(s, m, mapKeysInOrder(m)), nil
}

// satisfyRecursive implements the recursive mode: a work queue seeded with
// id, per-symbol assignment derivation, global conflict detection, and
// topological emission.
func satisfyRecursive(s *Schema, id SymbolId, desired Tristate) ([]Assignment, error) {
	type job struct {
		id      SymbolId
		desired Tristate
	}

	queue := []job{{id, desired}}
	done := map[SymbolId]bool{id: true}

	var discovery []SymbolId

	deps := make(map[SymbolId][]SymbolId)
	union := make(map[SymbolId]Tristate)

	var ambiguities []ambiguity

	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		e, amb := effectiveConstraint(s, j.id)
		if amb != nil {
			ambiguities = append(ambiguities, *amb)
		}

		m, err := walk(s, e, j.desired)
		if err != nil {
			return nil, err
		}

		for target, value := range m {
			if value != No {
				deps[j.id] = append(deps[j.id], target)
			}

			if existing, ok := union[target]; ok && existing != value {
				return nil, &SolveError{Kind: SolveConflictingAssignment, Symbol: target, A: existing, B: value}
			}

			union[target] = value

			if !done[target] {
				done[target] = true
				discovery = append(discovery, target)
				queue = append(queue, job{target, value})
			}
		}
	}

	if len(ambiguities) > 0 {
		syms := make([]SymbolId, 0, len(ambiguities))
		var clauses []string

		for _, a := range ambiguities {
			syms = append(syms, a.symbol)
			clauses = append(clauses, a.clauses...)
		}

		return nil, &SolveError{Kind: SolveAmbiguousSolution, Symbols: syms, Clauses: clauses}
	}

	emit := make(map[SymbolId]Tristate)

	for k, v := range union {
		if s.bridge.PromptCount(k) == 0 {
			continue
		}

		emit[k] = v
	}

	return orderedAssignments(s, emit, topoOrder(emit, deps, discovery)), nil
}

// topoOrder repeatedly emits symbols whose dependency set is empty or
// already fully emitted, tie-breaking in discovery (insertion) order. A
// residual cycle, if any, is flushed in discovery order rather than looping
// forever.
func topoOrder(emit map[SymbolId]Tristate, deps map[SymbolId][]SymbolId, discovery []SymbolId) []SymbolId {
	remaining := make(map[SymbolId]bool, len(emit))
	for id := range emit {
		remaining[id] = true
	}

	var order []SymbolId

	for len(remaining) > 0 {
		progressed := false

		for _, id := range discovery {
			if !remaining[id] {
				continue
			}

			ready := true

			for _, d := range deps[id] {
				if remaining[d] {
					ready = false
					break
				}
			}

			if ready {
				order = append(order, id)
				delete(remaining, id)
				progressed = true
			}
		}

		if !progressed {
			for _, id := range discovery {
				if remaining[id] {
					order = append(order, id)
					delete(remaining, id)
				}
			}

			break
		}
	}

	return order
}

// mapKeysInOrder returns m's keys in ascending SymbolId (schema) order.
func mapKeysInOrder(m map[SymbolId]Tristate) []SymbolId {
	out := make([]SymbolId, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func orderedAssignments(s *Schema, m map[SymbolId]Tristate, order []SymbolId) []Assignment {
	out := make([]Assignment, 0, len(order))

	for _, id := range order {
		name, _ := s.bridge.Name(id)
		out = append(out, Assignment{Name: name, Value: m[id]})
	}

	return out
}
