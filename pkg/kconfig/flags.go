package kconfig

// SymbolFlags is a bitset of schema-level flags carried on a Symbol. The
// engine reads some of these semantically (Const, Choice) and passes the
// rest through untouched for diagnostics.
type SymbolFlags uint32

// The flag bits the engine interprets or carries. Only FlagConst and
// FlagChoice are interpreted; the schema-maintenance bits FlagValid,
// FlagWritten and FlagCheckedRange, and any other bit a real native bridge
// reports (carried as FlagOther), are read through without semantic
// interpretation.
const (
	FlagConst SymbolFlags = 1 << iota
	FlagChoice
	FlagValid
	FlagWritten
	FlagCheckedRange
	FlagOther SymbolFlags = 1 << 31
)

// Has reports whether all bits of mask are set.
func (f SymbolFlags) Has(mask SymbolFlags) bool {
	return f&mask == mask
}

// Set returns f with mask's bits set.
func (f SymbolFlags) Set(mask SymbolFlags) SymbolFlags {
	return f | mask
}

// Clear returns f with mask's bits cleared.
func (f SymbolFlags) Clear(mask SymbolFlags) SymbolFlags {
	return f &^ mask
}

// IsConst reports whether FlagConst is set.
func (f SymbolFlags) IsConst() bool { return f.Has(FlagConst) }

// IsChoice reports whether FlagChoice is set.
func (f SymbolFlags) IsChoice() bool { return f.Has(FlagChoice) }
