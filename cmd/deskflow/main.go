package main

import (
	"fmt"
	"os"

	"github.com/deskflow-ai/deskflow/internal/cli"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskflow",
		Short: "Deskflow CLI - customer support conversation processing",
		Long: `Deskflow processes customer support conversations through an LLM
pipeline: sentiment analysis, summarization, action extraction, knowledge
lookup, ticket routing, similarity search, resolution recommendation, and
resolution-time prediction.

Environment variables (prefix DESKFLOW_):
  DESKFLOW_DATABASE_URL   Postgres connection string (required)
  DESKFLOW_OLLAMA_URL     Generation backend URL (default: http://localhost:11434/api)
  DESKFLOW_MODEL          Model name (default: llama2)
  DESKFLOW_SIMULATE       Serve canned responses without a backend`,
		Version: version,
	}

	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(cli.ProcessCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
