package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
)

func newTestSchema(t *testing.T, specs []bridge.SymbolSpec) *kconfig.Schema {
	t.Helper()

	s, err := kconfig.NewSchema(bridge.NewMemoryBridge(specs), nil)
	require.NoError(t, err)

	return s
}

func TestApplySourceDispatchesLineSourceByDefault(t *testing.T) {
	schema := newTestSchema(t, []bridge.SymbolSpec{
		{Name: "FOO", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "defconfig")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_FOO=y\n"), 0o644))

	require.NoError(t, applySource(schema, path))

	foo, _ := schema.Lookup("FOO")
	assert.Equal(t, kconfig.Yes, foo.GetTristate())
}

func TestApplySourceDispatchesYaegiSourceForGoExt(t *testing.T) {
	schema := newTestSchema(t, []bridge.SymbolSpec{
		{Name: "FOO", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.go")
	script := "import \"kconfig\"\n\nkconfig.Set(1, \"FOO\", \"y\")\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	require.NoError(t, applySource(schema, path))

	foo, _ := schema.Lookup("FOO")
	assert.Equal(t, kconfig.Yes, foo.GetTristate())
}

func TestApplySourceMissingFileErrors(t *testing.T) {
	schema := newTestSchema(t, nil)
	err := applySource(schema, filepath.Join(t.TempDir(), "missing.config"))
	assert.Error(t, err)
}

func TestRecordRunSkipsWithoutIndexDB(t *testing.T) {
	c := newFlagCmd()
	schema := newTestSchema(t, nil)

	assert.NotPanics(t, func() {
		recordRun(c, schema, "ok", 0)
	})
}

func TestRecordRunWritesSidecarRow(t *testing.T) {
	c := newFlagCmd()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	require.NoError(t, c.Flags().Set("index-db", dbPath))

	schema := newTestSchema(t, nil)

	recordRun(c, schema, "ok", 0)

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}
