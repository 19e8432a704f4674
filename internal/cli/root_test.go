package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "plotline", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, flag := range []string{"config", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"show", "serve", "templates", "init", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmdVersion(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
}
