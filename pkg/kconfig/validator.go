package kconfig

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// SymbolSetErrorKind enumerates why set_value rejected an assignment.
type SymbolSetErrorKind int

// The SymbolSetError taxonomy.
const (
	ErrIsConst SymbolSetErrorKind = iota
	ErrIsChoice
	ErrCannotSetManually
	ErrInvalidBoolean
	ErrInvalidTristate
	ErrInvalidInt
	ErrInvalidHex
	ErrInvalidValue
	ErrUnknownType
	ErrUnmetDependencies
	ErrRequiredByOther
	ErrMustBeSelected
	ErrInvalidVisibility
	ErrModulesNotEnabled
	ErrOutOfRange
	ErrAssignmentFailed
	ErrSatisfyFailed
)

// SymbolSetError is the structured error returned by set_value, naming the
// offending symbol and carrying the data a diagnostic needs.
type SymbolSetError struct {
	Kind   SymbolSetErrorKind
	Symbol SymbolId

	// Tristate write bounds (UnmetDependencies, RequiredByOther, InvalidVisibility).
	Min, Max Tristate
	// Integer/Hex write bounds (OutOfRange).
	IntMin, IntMax uint64

	// DisplayDeps are the rendered AND-clauses of the visibility
	// expression (UnmetDependencies).
	DisplayDeps []string
	// DisplayRevDeps are the rendered OR-clauses of the reverse-deps
	// expression (RequiredByOther, MustBeSelected).
	DisplayRevDeps []string
	// Satisfying is the satisfier's suggested assignment (UnmetDependencies).
	Satisfying []Assignment
	// Err wraps the inner SolveError for SatisfyFailed.
	Err error
}

// Error implements the error interface.
func (e *SymbolSetError) Error() string {
	switch e.Kind {
	case ErrIsConst:
		return fmt.Sprintf("symbol %d is const and cannot be set", e.Symbol)
	case ErrIsChoice:
		return fmt.Sprintf("symbol %d is a choice container and cannot be set directly", e.Symbol)
	case ErrCannotSetManually:
		return fmt.Sprintf("symbol %d has no prompts and cannot be set manually", e.Symbol)
	case ErrInvalidBoolean:
		return fmt.Sprintf("symbol %d: invalid boolean literal", e.Symbol)
	case ErrInvalidTristate:
		return fmt.Sprintf("symbol %d: invalid tristate literal", e.Symbol)
	case ErrInvalidInt:
		return fmt.Sprintf("symbol %d: invalid int literal", e.Symbol)
	case ErrInvalidHex:
		return fmt.Sprintf("symbol %d: invalid hex literal", e.Symbol)
	case ErrInvalidValue:
		return fmt.Sprintf("symbol %d: value incompatible with declared type", e.Symbol)
	case ErrUnknownType:
		return fmt.Sprintf("symbol %d: unknown type", e.Symbol)
	case ErrUnmetDependencies:
		return fmt.Sprintf("symbol %d: unmet dependencies", e.Symbol)
	case ErrRequiredByOther:
		return fmt.Sprintf("symbol %d: value is required by another symbol's selection", e.Symbol)
	case ErrMustBeSelected:
		return fmt.Sprintf("symbol %d: has no prompts and must be selected", e.Symbol)
	case ErrInvalidVisibility:
		return fmt.Sprintf("symbol %d: schema self-contradiction, max < min", e.Symbol)
	case ErrModulesNotEnabled:
		return fmt.Sprintf("symbol %d: Mod requires MODULES=y", e.Symbol)
	case ErrOutOfRange:
		return fmt.Sprintf("symbol %d: value out of declared range [%d, %d]", e.Symbol, e.IntMin, e.IntMax)
	case ErrAssignmentFailed:
		return fmt.Sprintf("symbol %d: assignment rejected by bridge", e.Symbol)
	case ErrSatisfyFailed:
		return fmt.Sprintf("symbol %d: satisfy failed: %s", e.Symbol, e.Err)
	default:
		return fmt.Sprintf("symbol %d: set failed", e.Symbol)
	}
}

// validate is the Validator: the ordered check pipeline inside set_value.
func (s *Schema) validate(id SymbolId, v SymbolValue) error {
	sym := s.Symbol(id)

	// 1. Disallow non-assignable targets.
	if sym.IsConst() {
		return &SymbolSetError{Kind: ErrIsConst, Symbol: id}
	}

	if sym.IsChoice() {
		return &SymbolSetError{Kind: ErrIsChoice, Symbol: id}
	}

	if sym.PromptCount() == 0 {
		return &SymbolSetError{Kind: ErrCannotSetManually, Symbol: id}
	}

	// 2. Type coercion.
	if auto, ok := v.(AutoValue); ok {
		coerced, err := coerceAuto(id, sym.Type(), auto.Raw)
		if err != nil {
			return err
		}

		return s.validate(id, coerced)
	}

	// 3. Cross-type compatibility.
	typ := sym.Type()

	if typ == Unknown {
		return &SymbolSetError{Kind: ErrUnknownType, Symbol: id}
	}

	switch v := v.(type) {
	case BooleanValue:
		if typ != Boolean {
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}

		return s.writeTristate(id, Bool(v.Value))
	case TristateValue:
		if typ == Boolean && v.Value == Mod {
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}

		if typ != Boolean && typ != TristateType {
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}

		return s.writeTristate(id, v.Value)
	case NumberValue:
		switch typ {
		case Int:
			return s.writeNumeric(id, v.Value, false)
		case Hex:
			return s.writeNumeric(id, v.Value, true)
		default:
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}
	case IntValue:
		if typ != Int {
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}

		return s.writeNumeric(id, v.Value, false)
	case HexValue:
		if typ != Hex {
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}

		return s.writeNumeric(id, v.Value, true)
	case StringValue:
		if typ != String {
			return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
		}

		return s.writeString(id, v.Value)
	default:
		return &SymbolSetError{Kind: ErrInvalidValue, Symbol: id}
	}
}

func coerceAuto(id SymbolId, typ SymbolType, raw string) (SymbolValue, error) {
	switch typ {
	case Boolean:
		switch raw {
		case "y":
			return BooleanValue{Value: true}, nil
		case "n":
			return BooleanValue{Value: false}, nil
		default:
			return nil, &SymbolSetError{Kind: ErrInvalidBoolean, Symbol: id}
		}
	case TristateType:
		t, err := expr.ParseTristate(raw)
		if err != nil {
			return nil, &SymbolSetError{Kind: ErrInvalidTristate, Symbol: id}
		}

		return TristateValue{Value: t}, nil
	case Int:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, &SymbolSetError{Kind: ErrInvalidInt, Symbol: id}
		}

		return IntValue{Value: n}, nil
	case Hex:
		if len(raw) < 2 || (raw[0:2] != "0x" && raw[0:2] != "0X") {
			return nil, &SymbolSetError{Kind: ErrInvalidHex, Symbol: id}
		}

		n, err := strconv.ParseUint(raw[2:], 16, 64)
		if err != nil {
			return nil, &SymbolSetError{Kind: ErrInvalidHex, Symbol: id}
		}

		return HexValue{Value: n}, nil
	case String:
		return StringValue{Value: raw}, nil
	default:
		return nil, &SymbolSetError{Kind: ErrUnknownType, Symbol: id}
	}
}

// writeTristate implements step 4, the tristate write.
func (s *Schema) writeTristate(id SymbolId, value Tristate) error {
	sym := s.Symbol(id)
	min := sym.ReverseDependencyFloor()
	max := sym.Visible()

	if max < min {
		return &SymbolSetError{Kind: ErrInvalidVisibility, Symbol: id, Min: min, Max: max}
	}

	if value > max {
		deps := expr.AndClauses(sym.VisibilityExpression())
		if isAbsentVisibility(sym.VisibilityExpression()) && !isAbsentReverseDeps(sym.ReverseDependencies()) {
			return &SymbolSetError{
				Kind:           ErrMustBeSelected,
				Symbol:         id,
				DisplayRevDeps: s.displayClauses(expr.OrClauses(sym.ReverseDependencies())),
			}
		}

		suggestion, _ := satisfy(s, id, SolverConfig{DesiredValue: value, Recursive: true})

		return &SymbolSetError{
			Kind:        ErrUnmetDependencies,
			Symbol:      id,
			Min:         min,
			Max:         max,
			DisplayDeps: s.displayClauses(deps),
			Satisfying:  suggestion,
		}
	}

	if value < min {
		return &SymbolSetError{
			Kind:           ErrRequiredByOther,
			Symbol:         id,
			Min:            min,
			Max:            max,
			DisplayRevDeps: s.displayClauses(expr.OrClauses(sym.ReverseDependencies())),
		}
	}

	if value == Mod && !s.modulesEnabled() {
		log.Warnf("symbol %d: Mod requires MODULES=y", id)
		return &SymbolSetError{Kind: ErrModulesNotEnabled, Symbol: id}
	}

	if !s.bridge.SetTristate(id, value) {
		return &SymbolSetError{Kind: ErrAssignmentFailed, Symbol: id}
	}

	s.recalculateAll()

	return nil
}

// writeNumeric implements step 5, the integer/hex write.
func (s *Schema) writeNumeric(id SymbolId, value uint64, hex bool) error {
	lo, hi := s.bridge.IntMin(id), s.bridge.IntMax(id)

	if !(lo == 0 && hi == 0) && (value < lo || value > hi) {
		return &SymbolSetError{Kind: ErrOutOfRange, Symbol: id, IntMin: lo, IntMax: hi}
	}

	var rendered string
	if hex {
		rendered = fmt.Sprintf("0x%x", value)
	} else {
		rendered = fmt.Sprintf("%d", value)
	}

	return s.writeString(id, rendered)
}

// writeString implements step 6, the plain string write.
func (s *Schema) writeString(id SymbolId, value string) error {
	if !s.bridge.SetString(id, value) {
		return &SymbolSetError{Kind: ErrAssignmentFailed, Symbol: id}
	}

	s.recalculateAll()

	return nil
}

func isAbsentVisibility(e Expr) bool {
	c, ok := e.(expr.ConstExpr)
	return ok && c.Value
}

func isAbsentReverseDeps(e Expr) bool {
	c, ok := e.(expr.ConstExpr)
	return ok && !c.Value
}
