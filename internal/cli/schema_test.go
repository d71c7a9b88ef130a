package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	sub := &cobra.Command{Use: "seed", Short: "Seed historical data"}
	sub.Flags().IntP("count", "n", 100, "number of tickets")

	root := &cobra.Command{Use: "deskflow", Short: "Support conversation pipeline"}
	root.AddCommand(sub)
	AddHelpJSONFlag(root)

	schema := GenerateSchema(root)

	assert.Equal(t, "deskflow", schema.Name)
	assert.Equal(t, "Support conversation pipeline", schema.Description)

	require.Len(t, schema.Subcommands, 1)
	seed := schema.Subcommands[0]
	assert.Equal(t, "seed", seed.Name)

	require.Len(t, seed.Flags, 1)
	flag := seed.Flags[0]
	assert.Equal(t, "count", flag.Name)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "int", flag.Type)
	assert.Equal(t, "100", flag.Default)
}

func TestGenerateSchema_SkipsHelpFlags(t *testing.T) {
	root := &cobra.Command{Use: "deskflow"}
	AddHelpJSONFlag(root)
	root.InitDefaultHelpFlag()

	schema := GenerateSchema(root)

	for _, flag := range schema.Flags {
		assert.NotEqual(t, "help", flag.Name)
		assert.NotEqual(t, "help-json", flag.Name)
	}
}

func TestFindTargetCommand(t *testing.T) {
	sub := &cobra.Command{Use: "serve"}
	root := &cobra.Command{Use: "deskflowd"}
	root.AddCommand(sub)

	assert.Equal(t, sub, findTargetCommand(root, []string{"serve"}))
	assert.Equal(t, root, findTargetCommand(root, nil))
	assert.Equal(t, root, findTargetCommand(root, []string{"unknown"}))
}
