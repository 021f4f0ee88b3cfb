package script_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/script"
)

func TestLineSourceAppliesAssignments(t *testing.T) {
	b := bridge.NewMemoryBridge([]bridge.SymbolSpec{
		{Name: "CMDLINE_BOOL", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
		{Name: "HEXOPT", Type: kconfig.Hex, PromptCount: 1, IntMin: 0, IntMax: 0xff, Initial: "0x0"},
	})

	s, err := kconfig.NewSchema(b, nil)
	require.NoError(t, err)

	src := "CONFIG_CMDLINE_BOOL=y\n# a comment\n\nCONFIG_HEXOPT=0x10\n"
	ls := script.LineSource{File: "test.config"}
	require.NoError(t, ls.Apply(s, strings.NewReader(src)))

	cmdline, _ := s.Lookup("CMDLINE_BOOL")
	assert.Equal(t, kconfig.Yes, cmdline.GetTristate())

	hexopt, _ := s.Lookup("HEXOPT")
	v, err := hexopt.GetValue()
	require.NoError(t, err)
	assert.Equal(t, kconfig.HexValue{Value: 0x10}, v)

	assert.Len(t, s.Journal().Transactions(), 2)
}

func TestLineSourceIgnoresUnknownSymbols(t *testing.T) {
	b := bridge.NewMemoryBridge([]bridge.SymbolSpec{
		{Name: "CMDLINE_BOOL", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
	})

	s, err := kconfig.NewSchema(b, nil)
	require.NoError(t, err)

	ls := script.LineSource{File: "test.config"}
	require.NoError(t, ls.Apply(s, strings.NewReader("CONFIG_DOES_NOT_EXIST=y\n")))

	assert.Empty(t, s.Journal().Transactions())
}
