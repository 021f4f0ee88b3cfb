package kconfig

import (
	log "github.com/sirupsen/logrus"

	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// Schema is the set of all Symbols plus a name index, built once from a
// Bridge and treated as structurally immutable thereafter (values mutate,
// structure does not). Symbols carry a SymbolId and a non-owning reference
// back to their Schema rather than a direct pointer cycle.
type Schema struct {
	bridge  Bridge
	ids     []SymbolId
	byName  map[string]SymbolId
	journal *Journal
}

// NewSchema initializes the Bridge and builds the Schema's symbol arena and
// name index from it. Failure of Init is a fatal initialization error.
func NewSchema(b Bridge, env map[string]string) (*Schema, error) {
	if err := b.Init(env); err != nil {
		return nil, err
	}

	ids := b.Symbols()
	byName := make(map[string]SymbolId, len(ids))

	for _, id := range ids {
		if name, ok := b.Name(id); ok {
			byName[name] = id
		}
	}

	return &Schema{bridge: b, ids: ids, byName: byName, journal: NewJournal()}, nil
}

// Bridge returns the Schema's underlying Bridge.
func (s *Schema) Bridge() Bridge { return s.bridge }

// Journal returns the Schema's transaction journal.
func (s *Schema) Journal() *Journal { return s.journal }

// Symbol returns the Symbol handle for id. id is never validated against
// the arena; an id not produced by this Schema yields undefined Bridge
// behavior, matching the native bridge's own lack of bounds checking.
func (s *Schema) Symbol(id SymbolId) Symbol { return Symbol{id: id, schema: s} }

// Lookup resolves a symbol by name.
func (s *Schema) Lookup(name string) (Symbol, bool) {
	id, ok := s.byName[name]
	if !ok {
		return Symbol{}, false
	}

	return Symbol{id: id, schema: s}, true
}

// Symbols returns every symbol in the Schema in Bridge-stable order.
func (s *Schema) Symbols() []Symbol {
	out := make([]Symbol, len(s.ids))
	for i, id := range s.ids {
		out[i] = Symbol{id: id, schema: s}
	}

	return out
}

// recalculateAll performs the full recalculation sweep required after every
// successful write: every non-const, named symbol has its derived state
// recomputed, because select/imply/range cascades can change any other
// symbol's visibility.
func (s *Schema) recalculateAll() {
	n := 0

	for _, id := range s.ids {
		if s.bridge.Flags(id).IsConst() {
			continue
		}

		if _, named := s.bridge.Name(id); !named {
			continue
		}

		s.bridge.CalcValue(id)
		n++
	}

	log.Debugf("recalculated %d symbols", n)
}

// modulesEnabled reports whether the MODULES symbol is Yes. An absent
// MODULES symbol (some minimal kernel trees) is treated as disabled.
func (s *Schema) modulesEnabled() bool {
	id, ok := s.byName["MODULES"]
	if !ok {
		return false
	}

	return s.bridge.GetTristate(id) == Yes
}

// The following methods let *Schema act as an expr.Environment, so
// expr.Eval can stay in the expr package without importing kconfig.

// Tristate implements expr.Environment.
func (s *Schema) Tristate(id SymbolId) Tristate { return s.bridge.GetTristate(id) }

// IsTristateCompatible implements expr.Environment.
func (s *Schema) IsTristateCompatible(id SymbolId) bool {
	switch s.bridge.Type(id) {
	case Boolean, TristateType:
		return true
	default:
		return false
	}
}

// IsNumericCompatible implements expr.Environment.
func (s *Schema) IsNumericCompatible(id SymbolId) bool {
	switch s.bridge.Type(id) {
	case Int, Hex, Unknown:
		return true
	default:
		return false
	}
}

// NumericString implements expr.Environment.
func (s *Schema) NumericString(id SymbolId) string { return s.bridge.GetString(id) }

// Name implements expr.Environment.
func (s *Schema) Name(id SymbolId) (string, bool) { return s.bridge.Name(id) }

var _ expr.Environment = (*Schema)(nil)

// displayExpr renders e using the Schema's name index for diagnostics.
func (s *Schema) displayExpr(e Expr) string {
	return expr.String(e, func(id SymbolId) string {
		if name, ok := s.bridge.Name(id); ok {
			return name
		}

		return "<choice>"
	})
}

// displayClauses renders a slice of top-level AND/OR clauses for diagnostics.
func (s *Schema) displayClauses(clauses []Expr) []string {
	out := make([]string, len(clauses))
	for i, c := range clauses {
		out[i] = s.displayExpr(c)
	}

	return out
}
