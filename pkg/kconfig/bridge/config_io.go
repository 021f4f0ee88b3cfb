package bridge

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
)

const configPrefix = "CONFIG_"

// readConfigInto implements the Bridge-level read_config primitive:
// line-oriented, unvalidated, bit-exact with the kernel's own reader.
// "# CONFIG_<NAME> is not set" sets a boolean/tristate symbol to No;
// anything else is a plain CONFIG_<NAME>=<VALUE> assignment.
func readConfigInto(b *MemoryBridge, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if name, ok := parseUnsetLine(line); ok {
			if id, ok := b.lookupByName(name); ok {
				b.current[id] = kconfig.No
			}

			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		name = strings.TrimPrefix(strings.TrimSpace(name), configPrefix)
		value = strings.Trim(strings.TrimSpace(value), `"`)

		id, ok := b.lookupByName(name)
		if !ok {
			continue
		}

		applyRawValue(b, id, value)
	}

	return scanner.Err()
}

func parseUnsetLine(line string) (string, bool) {
	const prefix = "# " + configPrefix
	const suffix = " is not set"

	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, suffix) {
		return "", false
	}

	return line[len(prefix) : len(line)-len(suffix)], true
}

func applyRawValue(b *MemoryBridge, id kconfig.SymbolId, value string) {
	switch b.Type(id) {
	case kconfig.Boolean, kconfig.TristateType:
		if t, err := kconfig.ParseTristate(value); err == nil {
			b.current[id] = t
		}
	default:
		b.strings[id] = value
	}
}

// writeConfigFrom implements the Bridge-level write_config primitive: one
// line per named, non-const symbol, bit-exact with the kernel's own
// ".config" serializer convention (unset tristate/boolean symbols render
// as a "is not set" comment, not an absent line).
func writeConfigFrom(b *MemoryBridge, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	for _, name := range b.sortedNames() {
		id, _ := b.lookupByName(name)
		if b.Flags(id).IsConst() {
			continue
		}

		switch b.Type(id) {
		case kconfig.Boolean, kconfig.TristateType:
			if t := b.GetTristate(id); t == kconfig.No {
				fmt.Fprintf(w, "# %s%s is not set\n", configPrefix, name)
			} else {
				fmt.Fprintf(w, "%s%s=%s\n", configPrefix, name, t.String())
			}
		case kconfig.String:
			fmt.Fprintf(w, "%s%s=%q\n", configPrefix, name, b.GetString(id))
		default:
			fmt.Fprintf(w, "%s%s=%s\n", configPrefix, name, b.GetString(id))
		}
	}

	return w.Flush()
}
