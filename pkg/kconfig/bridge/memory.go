// Package bridge provides concrete implementations of kconfig.Bridge.
// MemoryBridge is the in-memory reference implementation used by every test
// in this repository: it is built directly from a pre-built symbol table,
// not by parsing the Kconfig DSL (parsing the DSL stays out of scope,
// delegated to the real native bridge this package stands in for).
package bridge

import (
	"fmt"
	"sort"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// SymbolSpec is the pre-built description of one symbol, the shape a real
// native bridge would hand the engine after parsing a Kconfig tree.
type SymbolSpec struct {
	Name        string // empty for CHOICE containers and internal constants
	Type        kconfig.SymbolType
	Flags       kconfig.SymbolFlags
	PromptCount int
	Deps        kconfig.Expr // visibility expression, nil if none
	RevDeps     kconfig.Expr // reverse-dependency expression, nil if none
	IntMin      uint64
	IntMax      uint64

	// Initial carries the symbol's starting value; its dynamic type must
	// match Type (bool for Boolean, kconfig.Tristate for TristateType,
	// string for Int/Hex/String, rendered canonically for Int/Hex).
	Initial any
}

// MemoryBridge is a process-local, in-memory implementation of
// kconfig.Bridge over a fixed, pre-built symbol table.
type MemoryBridge struct {
	env     map[string]string
	specs   map[kconfig.SymbolId]*SymbolSpec
	order   []kconfig.SymbolId
	current map[kconfig.SymbolId]kconfig.Tristate
	strings map[kconfig.SymbolId]string
	byName  map[string]kconfig.SymbolId
	nextID  kconfig.SymbolId
}

// NewMemoryBridge constructs a MemoryBridge from a pre-built table of
// symbol specs, in the given order. The returned bridge has not yet been
// initialized; call Init (kconfig.NewSchema does this) before use.
func NewMemoryBridge(specs []SymbolSpec) *MemoryBridge {
	b := &MemoryBridge{
		specs:   make(map[kconfig.SymbolId]*SymbolSpec, len(specs)),
		current: make(map[kconfig.SymbolId]kconfig.Tristate, len(specs)),
		strings: make(map[kconfig.SymbolId]string, len(specs)),
		byName:  make(map[string]kconfig.SymbolId, len(specs)),
	}

	for i := range specs {
		id := b.nextID
		b.nextID++

		spec := specs[i]
		b.specs[id] = &spec
		b.order = append(b.order, id)

		if spec.Name != "" {
			b.byName[spec.Name] = id
		}

		switch v := spec.Initial.(type) {
		case bool:
			b.current[id] = kconfig.Bool(v)
		case kconfig.Tristate:
			b.current[id] = v
		case string:
			b.strings[id] = v
		case nil:
			b.current[id] = kconfig.No
		default:
			panic(fmt.Sprintf("bridge: unsupported initial value type %T for symbol %q", v, spec.Name))
		}
	}

	return b
}

// Init implements kconfig.Bridge.
func (b *MemoryBridge) Init(env map[string]string) error {
	b.env = env
	return nil
}

// GetEnv implements kconfig.Bridge.
func (b *MemoryBridge) GetEnv(name string) (string, bool) {
	v, ok := b.env[name]
	return v, ok
}

// Symbols implements kconfig.Bridge.
func (b *MemoryBridge) Symbols() []kconfig.SymbolId {
	out := make([]kconfig.SymbolId, len(b.order))
	copy(out, b.order)

	return out
}

func (b *MemoryBridge) spec(id kconfig.SymbolId) *SymbolSpec {
	spec, ok := b.specs[id]
	if !ok {
		panic(fmt.Sprintf("bridge: unknown symbol id %d", id))
	}

	return spec
}

// Name implements kconfig.Bridge.
func (b *MemoryBridge) Name(id kconfig.SymbolId) (string, bool) {
	name := b.spec(id).Name
	return name, name != ""
}

// Type implements kconfig.Bridge.
func (b *MemoryBridge) Type(id kconfig.SymbolId) kconfig.SymbolType { return b.spec(id).Type }

// Flags implements kconfig.Bridge.
func (b *MemoryBridge) Flags(id kconfig.SymbolId) kconfig.SymbolFlags { return b.spec(id).Flags }

// PromptCount implements kconfig.Bridge.
func (b *MemoryBridge) PromptCount(id kconfig.SymbolId) int { return b.spec(id).PromptCount }

// SetTristate implements kconfig.Bridge.
func (b *MemoryBridge) SetTristate(id kconfig.SymbolId, t kconfig.Tristate) bool {
	b.current[id] = t
	return true
}

// SetString implements kconfig.Bridge.
func (b *MemoryBridge) SetString(id kconfig.SymbolId, s string) bool {
	b.strings[id] = s
	return true
}

// GetString implements kconfig.Bridge.
func (b *MemoryBridge) GetString(id kconfig.SymbolId) string {
	switch b.spec(id).Type {
	case kconfig.Boolean, kconfig.TristateType:
		return b.current[id].String()
	default:
		return b.strings[id]
	}
}

// GetTristate implements kconfig.Bridge.
func (b *MemoryBridge) GetTristate(id kconfig.SymbolId) kconfig.Tristate { return b.current[id] }

// CalcValue implements kconfig.Bridge. MemoryBridge keeps no cached
// derived state: Visible and ReverseDependencyFloor evaluate the stored
// expressions against the bridge's current state on every call, so
// CalcValue has nothing to recompute. It does not change a symbol's
// current value, and it applies no select/imply cascades beyond what the
// expressions already encode.
func (b *MemoryBridge) CalcValue(id kconfig.SymbolId) {
	spec := b.spec(id)

	if spec.Deps == nil && spec.RevDeps == nil {
		return
	}
	// Evaluation is performed lazily by Visible/ReverseDependencyFloor
	// below; CalcValue exists as the explicit recomputation hook the
	// Validator and Schema call after every write.
}

// Visible implements kconfig.Bridge.
func (b *MemoryBridge) Visible(id kconfig.SymbolId) kconfig.Tristate {
	spec := b.spec(id)
	if spec.Deps == nil {
		return kconfig.Yes
	}

	v, err := expr.Eval(spec.Deps, b)
	if err != nil {
		return kconfig.No
	}

	return v
}

// ReverseDependencyFloor implements kconfig.Bridge.
func (b *MemoryBridge) ReverseDependencyFloor(id kconfig.SymbolId) kconfig.Tristate {
	spec := b.spec(id)
	if spec.RevDeps == nil {
		return kconfig.No
	}

	v, err := expr.Eval(spec.RevDeps, b)
	if err != nil {
		return kconfig.No
	}

	return v
}

// DepsWithPrompts implements kconfig.Bridge.
func (b *MemoryBridge) DepsWithPrompts(id kconfig.SymbolId) kconfig.Expr { return b.spec(id).Deps }

// ReverseDependencies implements kconfig.Bridge.
func (b *MemoryBridge) ReverseDependencies(id kconfig.SymbolId) kconfig.Expr {
	return b.spec(id).RevDeps
}

// IntMin implements kconfig.Bridge.
func (b *MemoryBridge) IntMin(id kconfig.SymbolId) uint64 { return b.spec(id).IntMin }

// IntMax implements kconfig.Bridge.
func (b *MemoryBridge) IntMax(id kconfig.SymbolId) uint64 { return b.spec(id).IntMax }

// ReadConfig implements kconfig.Bridge by delegating to the line-oriented
// .config reader in config_io.go.
func (b *MemoryBridge) ReadConfig(path string) error {
	return readConfigInto(b, path)
}

// WriteConfig implements kconfig.Bridge by delegating to the line-oriented
// .config writer in config_io.go.
func (b *MemoryBridge) WriteConfig(path string) error {
	return writeConfigFrom(b, path)
}

// The following methods let *MemoryBridge act as an expr.Environment for
// its own Visible/ReverseDependencyFloor evaluation.

// Tristate implements expr.Environment.
func (b *MemoryBridge) Tristate(id kconfig.SymbolId) kconfig.Tristate { return b.GetTristate(id) }

// IsTristateCompatible implements expr.Environment.
func (b *MemoryBridge) IsTristateCompatible(id kconfig.SymbolId) bool {
	switch b.Type(id) {
	case kconfig.Boolean, kconfig.TristateType:
		return true
	default:
		return false
	}
}

// IsNumericCompatible implements expr.Environment.
func (b *MemoryBridge) IsNumericCompatible(id kconfig.SymbolId) bool {
	switch b.Type(id) {
	case kconfig.Int, kconfig.Hex, kconfig.Unknown:
		return true
	default:
		return false
	}
}

// NumericString implements expr.Environment.
func (b *MemoryBridge) NumericString(id kconfig.SymbolId) string { return b.GetString(id) }

// sortedNames returns every named symbol's name in lexical order, used by
// config_io.go to produce deterministic .config output.
func (b *MemoryBridge) sortedNames() []string {
	names := make([]string, 0, len(b.order))

	for _, id := range b.order {
		if name, ok := b.Name(id); ok {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// lookupByName resolves a symbol's id by name, used by config_io.go to
// apply a parsed .config line to the right symbol.
func (b *MemoryBridge) lookupByName(name string) (kconfig.SymbolId, bool) {
	id, ok := b.byName[name]
	return id, ok
}

var _ kconfig.Bridge = (*MemoryBridge)(nil)
