package bridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
)

func newTestSchema(t *testing.T) (*kconfig.Schema, *bridge.MemoryBridge) {
	t.Helper()

	b := bridge.NewMemoryBridge([]bridge.SymbolSpec{
		{Name: "CMDLINE_BOOL", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
		{Name: "CRYPTO", Type: kconfig.TristateType, PromptCount: 1, Initial: kconfig.No},
		{Name: "MODULES", Type: kconfig.Boolean, PromptCount: 1, Initial: true},
	})

	s, err := kconfig.NewSchema(b, map[string]string{"ARCH": "x86_64"})
	require.NoError(t, err)

	return s, b
}

func TestMemoryBridgeBasicSetAndGet(t *testing.T) {
	s, _ := newTestSchema(t)

	sym, ok := s.Lookup("CMDLINE_BOOL")
	require.True(t, ok)

	err := sym.SetValue(kconfig.BooleanValue{Value: true})
	require.NoError(t, err)
	assert.Equal(t, kconfig.Yes, sym.GetTristate())
}

func TestConfigWriteThenRead(t *testing.T) {
	s, b := newTestSchema(t)

	sym, _ := s.Lookup("CMDLINE_BOOL")
	require.NoError(t, sym.SetValue(kconfig.BooleanValue{Value: true}))

	dir := t.TempDir()
	path := filepath.Join(dir, ".config")
	require.NoError(t, b.WriteConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CONFIG_CMDLINE_BOOL=y")
	assert.Contains(t, string(data), "# CONFIG_CRYPTO is not set")

	b2 := bridge.NewMemoryBridge([]bridge.SymbolSpec{
		{Name: "CMDLINE_BOOL", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
		{Name: "CRYPTO", Type: kconfig.TristateType, PromptCount: 1, Initial: kconfig.No},
		{Name: "MODULES", Type: kconfig.Boolean, PromptCount: 1, Initial: true},
	})
	require.NoError(t, b2.Init(nil))
	require.NoError(t, b2.ReadConfig(path))

	s2, err := kconfig.NewSchema(b2, nil)
	require.NoError(t, err)

	sym2, _ := s2.Lookup("CMDLINE_BOOL")
	assert.Equal(t, kconfig.Yes, sym2.GetTristate())
}
