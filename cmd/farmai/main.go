package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishnabalajiwork/farmai-assistant/internal/cli"
	"github.com/krishnabalajiwork/farmai-assistant/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "farmai",
		Short: "FarmAI CLI - Agricultural question answering",
		Long: `FarmAI CLI asks farming questions against a farmai server.

Environment variables:
  FARMAI_API_KEY   API key for authentication (optional)
  FARMAI_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-key", "", "API key for authentication (overrides env and config)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.InitCmd())
	rootCmd.AddCommand(client.LogoutCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.StatusCmd())
	rootCmd.AddCommand(client.HealthCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
