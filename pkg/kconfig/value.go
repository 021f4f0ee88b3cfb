package kconfig

import "fmt"

// SymbolValue is the tagged union of every form a value can take on the
// way into set_value. Auto is the late-bound form produced by config-source
// parsing; it is coerced against the symbol's declared type before the
// Validator's semantic checks run. Number unifies Int and Hex so a caller
// that only knows "this is numeric" doesn't have to pick a representation.
type SymbolValue interface {
	isSymbolValue()
}

// AutoValue carries an un-typed string to be coerced against the target
// symbol's declared SymbolType.
type AutoValue struct{ Raw string }

// BooleanValue is a plain boolean, valid only against a Boolean symbol.
type BooleanValue struct{ Value bool }

// TristateValue is a tristate, valid against Boolean (Mod rejected) or
// TristateType symbols.
type TristateValue struct{ Value Tristate }

// IntValue is a decimal-rendered unsigned integer.
type IntValue struct{ Value uint64 }

// HexValue is a "0x"-rendered unsigned integer.
type HexValue struct{ Value uint64 }

// NumberValue is the unifying numeric form, reclassified to Int or Hex
// depending on the target symbol's declared type.
type NumberValue struct{ Value uint64 }

// StringValue is a verbatim string, valid only against a String symbol.
type StringValue struct{ Value string }

func (AutoValue) isSymbolValue()     {}
func (BooleanValue) isSymbolValue()  {}
func (TristateValue) isSymbolValue() {}
func (IntValue) isSymbolValue()      {}
func (HexValue) isSymbolValue()      {}
func (NumberValue) isSymbolValue()   {}
func (StringValue) isSymbolValue()   {}

// String renders the value in the same canonical form the Bridge's
// get_string would produce for it.
func (v AutoValue) String() string     { return v.Raw }
func (v BooleanValue) String() string  { return map[bool]string{true: "y", false: "n"}[v.Value] }
func (v TristateValue) String() string { return v.Value.String() }
func (v IntValue) String() string      { return fmt.Sprintf("%d", v.Value) }
func (v HexValue) String() string      { return fmt.Sprintf("0x%x", v.Value) }
func (v NumberValue) String() string   { return fmt.Sprintf("%d", v.Value) }
func (v StringValue) String() string   { return v.Value }
