package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("arch", "", "")
	c.Flags().String("kernelversion", "", "")
	c.Flags().String("pwd", "", "")
	c.Flags().Bool("offline", true, "")
	c.Flags().String("index-db", "", "")

	return c
}

func TestBuildEnvironmentReadsFlags(t *testing.T) {
	c := newFlagCmd()
	require.NoError(t, c.Flags().Set("arch", "x86_64"))
	require.NoError(t, c.Flags().Set("kernelversion", "6.1.0"))
	require.NoError(t, c.Flags().Set("pwd", "/home/user/linux"))

	env := buildEnvironment(c)

	assert.Equal(t, "x86_64", env["ARCH"])
	assert.Equal(t, "6.1.0", env["KERNELVERSION"])
	assert.Equal(t, "/home/user/linux", env["PWD"])
}

func TestBuildEnvironmentFallsBackToWorkingDirectory(t *testing.T) {
	c := newFlagCmd()

	env := buildEnvironment(c)
	assert.NotEmpty(t, env["PWD"])
}

func TestOpenSchemaBuildsMemoryBridgeSchema(t *testing.T) {
	c := newFlagCmd()

	schema, err := openSchema(c, nil)
	require.NoError(t, err)
	assert.NotNil(t, schema.Bridge())
}
