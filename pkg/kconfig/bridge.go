package kconfig

// Bridge is the contract the engine consumes from the native Kconfig
// module. It is defined here, inside the consuming package, so that
// concrete implementations (pkg/kconfig/bridge.MemoryBridge and a future
// native binding) can depend on kconfig without kconfig depending on them.
//
// Failure of any primitive during schema construction is a fatal
// initialization error; the engine never calls the Kconfig DSL parser, it
// consumes a pre-built schema exposed through this interface.
type Bridge interface {
	// Init must precede any other call. Idempotence is not required.
	Init(env map[string]string) error
	// GetEnv reads a schema-side environment variable (e.g. KERNELVERSION, ARCH).
	GetEnv(name string) (string, bool)

	// Symbols returns every symbol handle in stable, repeatable order.
	Symbols() []SymbolId
	// Name returns a symbol's name, or false for unnamed (CHOICE) symbols.
	Name(id SymbolId) (string, bool)
	// Type returns a symbol's immutable declared type.
	Type(id SymbolId) SymbolType
	// Flags returns a symbol's immutable flag bitset.
	Flags(id SymbolId) SymbolFlags
	// PromptCount returns the number of prompts attached to a symbol.
	PromptCount(id SymbolId) int

	// SetTristate attempts a raw tristate write, unvalidated against
	// visibility; the Validator wraps this call.
	SetTristate(id SymbolId, t Tristate) bool
	// SetString attempts a raw string write, unvalidated.
	SetString(id SymbolId, s string) bool
	// GetString returns the canonical rendering of a symbol's current value.
	GetString(id SymbolId) string
	// GetTristate returns a symbol's current tristate value.
	GetTristate(id SymbolId) Tristate

	// CalcValue recomputes a symbol's derived visible, reverse-dependency
	// floor, and current value.
	CalcValue(id SymbolId)
	// Visible returns the upper bound on a symbol's assignable value.
	Visible(id SymbolId) Tristate
	// ReverseDependencyFloor returns the lower bound forced by select/imply.
	ReverseDependencyFloor(id SymbolId) Tristate

	// DepsWithPrompts returns the visibility expression, or nil if absent.
	DepsWithPrompts(id SymbolId) Expr
	// ReverseDependencies returns the "who selects this symbol" expression,
	// or nil if absent.
	ReverseDependencies(id SymbolId) Expr

	// IntMin and IntMax return the declared integer/hex range; (0, 0) means
	// "no declared range".
	IntMin(id SymbolId) uint64
	IntMax(id SymbolId) uint64

	// ReadConfig loads a line-oriented .config file and applies it at the
	// bridge level (no validation).
	ReadConfig(path string) error
	// WriteConfig writes the current schema state out in the kernel's own
	// .config format, bit-exact with its native serializer.
	WriteConfig(path string) error
}
