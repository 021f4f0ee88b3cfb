// Package script implements the Script Frontend: concrete readers that
// drive a *kconfig.Schema from an external configuration source, each
// carrying (file, line) into the engine's Transaction Journal.
package script

import (
	"bufio"
	"io"
	"strings"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
)

const configPrefix = "CONFIG_"

// LineSource reads a line-oriented .config-style source: one assignment
// per line as CONFIG_<NAME>=<VALUE>. Empty lines and lines starting with
// "#" are ignored. <VALUE> is trimmed of surrounding double quotes. The
// CONFIG_ prefix is stripped from the key always, and from the value only
// when the target symbol is a choice container's selection.
type LineSource struct {
	File string
}

// Apply reads every assignment line from r and runs it through schema's
// Symbol Model with SetValueTracked, so every outcome lands in the
// Journal regardless of success or failure.
func (ls LineSource) Apply(schema *kconfig.Schema, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rawValue, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		name := strings.TrimPrefix(strings.TrimSpace(key), configPrefix)
		value := strings.Trim(strings.TrimSpace(rawValue), `"`)

		sym, ok := schema.Lookup(name)
		if !ok {
			continue
		}

		if sym.IsChoice() {
			memberName := strings.TrimPrefix(value, configPrefix)

			member, ok := schema.Lookup(memberName)
			if !ok {
				continue
			}

			_ = member.SetValueTracked(kconfig.TristateValue{Value: kconfig.Yes}, ls.File, lineNo, "")

			continue
		}

		_ = sym.SetValueTracked(kconfig.AutoValue{Raw: value}, ls.File, lineNo, "")
	}

	return scanner.Err()
}
