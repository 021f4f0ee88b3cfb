package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/script"
)

func newTestSchema(t *testing.T, specs []bridge.SymbolSpec) *kconfig.Schema {
	t.Helper()

	s, err := kconfig.NewSchema(bridge.NewMemoryBridge(specs), nil)
	require.NoError(t, err)

	return s
}

func TestYaegiSourceSetAssignsValue(t *testing.T) {
	s := newTestSchema(t, []bridge.SymbolSpec{
		{Name: "FOO", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
	})

	src := "import \"kconfig\"\n\nkconfig.Set(1, \"FOO\", \"y\")\n"

	ys := script.YaegiSource{File: "rules.go"}
	require.NoError(t, ys.Apply(s, src))

	foo, _ := s.Lookup("FOO")
	assert.Equal(t, kconfig.Yes, foo.GetTristate())
	assert.Len(t, s.Journal().Transactions(), 1)
}

func TestYaegiSourceSetUnknownSymbolErrors(t *testing.T) {
	s := newTestSchema(t, nil)

	src := "import \"kconfig\"\n\nkconfig.Set(1, \"NOPE\", \"y\")\n"

	ys := script.YaegiSource{File: "rules.go"}
	err := ys.Apply(s, src)
	assert.Error(t, err)
}

func TestYaegiSourceSatisfyDerivesAndAppliesAssignments(t *testing.T) {
	dep := kconfig.SymbolId(0)

	s := newTestSchema(t, []bridge.SymbolSpec{
		{Name: "DEP", Type: kconfig.Boolean, PromptCount: 1, Initial: false},
		{
			Name: "FOO", Type: kconfig.Boolean, PromptCount: 1, Initial: false,
			Deps: expr.Sym(dep),
		},
	})

	src := "import \"kconfig\"\n\nkconfig.Satisfy(1, \"FOO\", kconfig.Yes, true)\n"

	ys := script.YaegiSource{File: "rules.go"}
	require.NoError(t, ys.Apply(s, src))

	depSym, _ := s.Lookup("DEP")
	assert.Equal(t, kconfig.Yes, depSym.GetTristate())
}
