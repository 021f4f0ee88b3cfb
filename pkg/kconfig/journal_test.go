package kconfig_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
)

// TestReassignmentWarning is seed scenario 6.
func TestReassignmentWarning(t *testing.T) {
	s, _ := buildSchema(t, []bridge.SymbolSpec{
		{Name: "S", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
	})

	sym, ok := s.Lookup("S")
	require.True(t, ok)

	require.NoError(t, sym.SetValueTracked(kconfig.BooleanValue{Value: true}, "x.cfg", 1, ""))
	require.NoError(t, sym.SetValueTracked(kconfig.BooleanValue{Value: false}, "x.cfg", 2, ""))

	var buf bytes.Buffer
	errCount := s.Journal().Report(&buf, s.Bridge().Name)

	assert.Equal(t, 0, errCount)
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "warning: reassignment of symbol S"))
}

func TestJournalErrorAborts(t *testing.T) {
	s, _ := buildSchema(t, []bridge.SymbolSpec{
		{Name: "S", Type: kconfig.Boolean, Flags: kconfig.FlagConst, PromptCount: 1, Initial: false},
	})

	sym, ok := s.Lookup("S")
	require.True(t, ok)

	err := sym.SetValueTracked(kconfig.BooleanValue{Value: true}, "x.cfg", 1, "")
	require.Error(t, err)

	var buf bytes.Buffer
	errCount := s.Journal().Report(&buf, s.Bridge().Name)

	assert.Equal(t, 1, errCount)
	assert.Contains(t, buf.String(), "aborting due to 1 previous error")
}
