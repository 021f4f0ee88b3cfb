package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
)

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadSchemaFileResolvesCrossReferences(t *testing.T) {
	path := writeSchemaFile(t, `
- name: FOO
  type: bool
  prompt_count: 1
  initial: false
- name: BAR
  type: bool
  prompt_count: 1
  deps: "FOO"
  initial: false
`)

	specs, err := loadSchemaFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "FOO", specs[0].Name)
	assert.Equal(t, kconfig.Boolean, specs[0].Type)

	assert.Equal(t, "BAR", specs[1].Name)
	require.NotNil(t, specs[1].Deps)
}

func TestLoadSchemaFileParsesFlagsAndRanges(t *testing.T) {
	path := writeSchemaFile(t, `
- name: ARCH_DEFAULT
  type: string
  flags: [const]
  initial: "x86"
- name: PAGE_SIZE
  type: hex
  prompt_count: 1
  int_min: 0
  int_max: 4096
  initial: "0x1000"
`)

	specs, err := loadSchemaFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.True(t, specs[0].Flags.IsConst())
	assert.Equal(t, uint64(4096), specs[1].IntMax)
}

func TestLoadSchemaFileRejectsUnknownType(t *testing.T) {
	path := writeSchemaFile(t, `
- name: FOO
  type: wat
`)

	_, err := loadSchemaFile(path)
	assert.Error(t, err)
}

func TestLoadSchemaFileRejectsUnknownFlag(t *testing.T) {
	path := writeSchemaFile(t, `
- name: FOO
  type: bool
  flags: [bogus]
`)

	_, err := loadSchemaFile(path)
	assert.Error(t, err)
}

func resolver(names map[string]kconfig.SymbolId) func(string) (kconfig.SymbolId, bool) {
	return func(s string) (kconfig.SymbolId, bool) {
		id, ok := names[s]
		return id, ok
	}
}

func TestParseDepsExprEmptyIsNil(t *testing.T) {
	e, err := parseDepsExpr("", resolver(nil))
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestParseDepsExprBooleanConnectives(t *testing.T) {
	names := map[string]kconfig.SymbolId{"A": 0, "B": 1, "C": 2}

	e, err := parseDepsExpr("A && (B || !C)", resolver(names))
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestParseDepsExprComparison(t *testing.T) {
	names := map[string]kconfig.SymbolId{"A": 0, "B": 1}

	e, err := parseDepsExpr("A == B", resolver(names))
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestParseDepsExprUnknownSymbol(t *testing.T) {
	_, err := parseDepsExpr("NOPE", resolver(nil))
	assert.Error(t, err)
}

func TestParseDepsExprUnknownComparisonRHS(t *testing.T) {
	names := map[string]kconfig.SymbolId{"A": 0}

	_, err := parseDepsExpr("A == 5", resolver(names))
	assert.Error(t, err)
}

func TestParseDepsExprTrailingToken(t *testing.T) {
	names := map[string]kconfig.SymbolId{"A": 0}

	_, err := parseDepsExpr("A )", resolver(names))
	assert.Error(t, err)
}

func TestParseSymbolTypeAliases(t *testing.T) {
	cases := map[string]kconfig.SymbolType{
		"bool":     kconfig.Boolean,
		"boolean":  kconfig.Boolean,
		"tristate": kconfig.TristateType,
		"int":      kconfig.Int,
		"hex":      kconfig.Hex,
		"string":   kconfig.String,
	}

	for in, want := range cases {
		got, err := parseSymbolType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
