package index_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig/index"
)

func TestSidecarRecordsOneRowPerRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	sidecar, err := index.Open(path)
	require.NoError(t, err)
	defer sidecar.Close()

	run := index.Run{
		RunID:         "11111111-1111-1111-1111-111111111111",
		PWD:           "/home/user/linux",
		Arch:          "x86_64",
		KernelVersion: "6.1.0",
		Outcome:       "ok",
		ErrorCount:    0,
	}

	require.NoError(t, sidecar.Record(run))
}

func TestSidecarOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	first, err := index.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := index.Open(path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.Record(index.Run{RunID: "r2", PWD: "/tmp/linux", Outcome: "ok"}))
}

func TestRunKernelTreeNameIsPWDBaseName(t *testing.T) {
	r := index.Run{PWD: "/home/user/linux-6.1"}
	assert.Equal(t, "linux-6.1", r.KernelTreeName())
}

func TestRunKernelTreeNameEmptyPWD(t *testing.T) {
	r := index.Run{}
	assert.Equal(t, ".", r.KernelTreeName())
}
