package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCommandOutput(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	require.Contains(t, out.String(), "GRM Atlanta API Server")
	require.Contains(t, out.String(), "Version:")
	require.Contains(t, out.String(), "Go version:")
}

func TestRootRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"serve", "version", "healthcheck", "migrate", "admin"} {
		require.True(t, names[want], "missing subcommand %s", want)
	}
}
