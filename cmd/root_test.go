package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "prior.dev/pkg/prior/internal/model"
)

func TestParsePaths(t *testing.T) {
	assert.Empty(t, parsePaths(nil))
	assert.Equal(t, []m.Path{"./...", "examples"}, parsePaths([]string{"./...", "examples"}))
}

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"list", "compile", "sample", "show", "merge", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	output := rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)

	exclude := rootCmd.PersistentFlags().Lookup("exclude")
	require.NotNil(t, exclude)
	assert.Equal(t, "x", exclude.Shorthand)
}
