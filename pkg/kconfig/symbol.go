package kconfig

import (
	"fmt"
	"strconv"

	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// Symbol is a typed handle over a schema symbol: a SymbolId paired with a
// non-owning reference to the Schema that owns it. Symbol values are cheap
// and comparable; there is exactly one logical symbol per SymbolId
// regardless of how many Symbol handles exist for it.
type Symbol struct {
	id     SymbolId
	schema *Schema
}

// Id returns the symbol's engine-assigned handle.
func (s Symbol) Id() SymbolId { return s.id }

// Name returns the symbol's name; absent for CHOICE containers and some
// internal constant symbols.
func (s Symbol) Name() (string, bool) { return s.schema.bridge.Name(s.id) }

// Type returns the symbol's immutable declared type.
func (s Symbol) Type() SymbolType { return s.schema.bridge.Type(s.id) }

// Flags returns the symbol's immutable flag bitset.
func (s Symbol) Flags() SymbolFlags { return s.schema.bridge.Flags(s.id) }

// IsConst reports whether the symbol's value is fixed.
func (s Symbol) IsConst() bool { return s.Flags().IsConst() }

// IsChoice reports whether the symbol is a choice-group container.
func (s Symbol) IsChoice() bool { return s.Flags().IsChoice() }

// PromptCount returns the number of prompts attached to the symbol. A
// symbol with zero prompts cannot be set directly; it can only be pulled
// in via select/imply chains.
func (s Symbol) PromptCount() int { return s.schema.bridge.PromptCount(s.id) }

// Visible recalculates and returns the upper bound on the symbol's
// assignable value.
func (s Symbol) Visible() Tristate {
	s.schema.bridge.CalcValue(s.id)
	return s.schema.bridge.Visible(s.id)
}

// ReverseDependencyFloor returns the lower bound forced by select/imply.
func (s Symbol) ReverseDependencyFloor() Tristate {
	return s.schema.bridge.ReverseDependencyFloor(s.id)
}

// GetTristate returns the symbol's current tristate value.
func (s Symbol) GetTristate() Tristate { return s.schema.bridge.GetTristate(s.id) }

// GetString returns the symbol's current canonical string rendering.
func (s Symbol) GetString() string { return s.schema.bridge.GetString(s.id) }

// GetValueErrorKind enumerates why GetValue could not interpret a symbol's
// current value as its declared type.
type GetValueErrorKind int

// The GetValueError taxonomy.
const (
	GetValueUnknownType GetValueErrorKind = iota
	GetValueInvalidInt
	GetValueInvalidHex
)

// GetValueError is returned by GetValue.
type GetValueError struct {
	Kind   GetValueErrorKind
	Symbol SymbolId
}

// Error implements the error interface.
func (e *GetValueError) Error() string {
	switch e.Kind {
	case GetValueUnknownType:
		return fmt.Sprintf("symbol %d: unknown type", e.Symbol)
	case GetValueInvalidInt:
		return fmt.Sprintf("symbol %d: current value is not a valid int", e.Symbol)
	default:
		return fmt.Sprintf("symbol %d: current value is not a valid hex", e.Symbol)
	}
}

// GetValue dispatches on the symbol's declared type and returns its
// current value as a SymbolValue.
func (s Symbol) GetValue() (SymbolValue, error) {
	switch s.Type() {
	case Boolean:
		return BooleanValue{Value: s.GetTristate() == Yes}, nil
	case TristateType:
		return TristateValue{Value: s.GetTristate()}, nil
	case Int:
		v, err := strconv.ParseUint(s.GetString(), 10, 64)
		if err != nil {
			return nil, &GetValueError{GetValueInvalidInt, s.id}
		}

		return IntValue{Value: v}, nil
	case Hex:
		str := s.GetString()
		if len(str) < 2 || (str[0:2] != "0x" && str[0:2] != "0X") {
			return nil, &GetValueError{GetValueInvalidHex, s.id}
		}

		v, err := strconv.ParseUint(str[2:], 16, 64)
		if err != nil {
			return nil, &GetValueError{GetValueInvalidHex, s.id}
		}

		return HexValue{Value: v}, nil
	case String:
		return StringValue{Value: s.GetString()}, nil
	default:
		return nil, &GetValueError{GetValueUnknownType, s.id}
	}
}

// VisibilityExpression returns the symbol's deps-with-prompts expression,
// or Const(true) if the Bridge reports none.
func (s Symbol) VisibilityExpression() Expr {
	if e := s.schema.bridge.DepsWithPrompts(s.id); e != nil {
		return e
	}

	return expr.Const(true)
}

// ReverseDependencies returns the symbol's reverse-dependency expression,
// or Const(false) if the Bridge reports none.
func (s Symbol) ReverseDependencies() Expr {
	if e := s.schema.bridge.ReverseDependencies(s.id); e != nil {
		return e
	}

	return expr.Const(false)
}

// SetValue runs v through the Validator against this symbol, without
// touching the Journal.
func (s Symbol) SetValue(v SymbolValue) error {
	return s.schema.validate(s.id, v)
}

// SetValueTracked runs v through the Validator and appends the outcome to
// the Schema's Journal regardless of success or failure.
func (s Symbol) SetValueTracked(v SymbolValue, file string, line int, traceback string) error {
	before := s.GetTristate()
	err := s.SetValue(v)
	after := s.GetTristate()

	s.schema.journal.append(Transaction{
		Symbol:        s.id,
		File:          file,
		Line:          line,
		Traceback:     traceback,
		IntendedValue: v,
		ValueBefore:   before,
		ValueAfter:    after,
		Err:           err,
	})

	return err
}

// SetChoice sets the named member of a choice group to Yes, the
// choice-specific counterpart to directly assigning the (unnamed) choice
// container itself. It returns an error when the symbol is not a choice
// container.
func (s Symbol) SetChoice(memberName string) error {
	if !s.IsChoice() {
		return fmt.Errorf("symbol %d is not a choice container", s.id)
	}

	member, ok := s.schema.Lookup(memberName)
	if !ok {
		return fmt.Errorf("choice member %q not found", memberName)
	}

	return member.SetValue(TristateValue{Value: Yes})
}

// Satisfy derives an ordered assignment list over other symbols that would
// make this symbol assumable at cfg.DesiredValue.
func (s Symbol) Satisfy(cfg SolverConfig) ([]Assignment, error) {
	return satisfy(s.schema, s.id, cfg)
}
