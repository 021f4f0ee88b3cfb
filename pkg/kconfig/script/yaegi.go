package script

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
)

// YaegiSource is the scripted frontend: each statement in the script is a
// call back into the engine's Symbol Model, carrying the calling script's
// file and line into the Journal. The script language's grammar is a
// Go subset (traefik/yaegi's interpreter); the kconfig package exposed to
// it below is the only surface a script sees.
type YaegiSource struct {
	File string
}

// scriptAPI is bound into the interpreter as package "kconfig".
type scriptAPI struct {
	schema *kconfig.Schema
	file   string
}

// Set coerces value against name's declared type and assigns it, tracked
// at the call's source line.
func (a *scriptAPI) Set(line int, name, value string) error {
	sym, ok := a.schema.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown symbol %q", name)
	}

	return sym.SetValueTracked(kconfig.AutoValue{Raw: value}, a.file, line, "")
}

// Satisfy derives prerequisite assignments for name at the desired
// tristate and, on success, applies them in order, each tracked at the
// call's source line.
func (a *scriptAPI) Satisfy(line int, name string, desired kconfig.Tristate, recursive bool) ([]kconfig.Assignment, error) {
	sym, ok := a.schema.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown symbol %q", name)
	}

	assignments, err := sym.Satisfy(kconfig.SolverConfig{DesiredValue: desired, Recursive: recursive})
	if err != nil {
		return nil, &kconfig.SymbolSetError{Kind: kconfig.ErrSatisfyFailed, Symbol: sym.Id(), Err: err}
	}

	for _, asn := range assignments {
		target, ok := a.schema.Lookup(asn.Name)
		if !ok {
			continue
		}

		_ = target.SetValueTracked(kconfig.TristateValue{Value: asn.Value}, a.file, line, "")
	}

	return assignments, nil
}

// Apply interprets src as a Go-subset script against schema. The script
// calls into the bound "kconfig" package's Set/Satisfy functions; this
// method's own call sites are each assumed to pass their own source line
// (yaegi does not expose caller position info back to bound Go functions,
// so scripts that want precise per-statement diagnostics pass their own
// line number explicitly as the first argument of each call, the same
// convention compiler-style line reporting elsewhere in this engine uses).
func (ys YaegiSource) Apply(schema *kconfig.Schema, src string) error {
	i := interp.New(interp.Options{})

	if err := i.Use(stdlib.Symbols); err != nil {
		return err
	}

	api := &scriptAPI{schema: schema, file: ys.File}

	exports := interp.Exports{
		"kconfig/kconfig": map[string]reflect.Value{
			"Set":     reflect.ValueOf(api.Set),
			"Satisfy": reflect.ValueOf(api.Satisfy),
			"No":      reflect.ValueOf(kconfig.No),
			"Mod":     reflect.ValueOf(kconfig.Mod),
			"Yes":     reflect.ValueOf(kconfig.Yes),
		},
	}

	if err := i.Use(exports); err != nil {
		return err
	}

	_, err := i.Eval(src)

	return err
}
