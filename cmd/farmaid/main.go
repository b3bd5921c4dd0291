package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishnabalajiwork/farmai-assistant/internal/cli"
	"github.com/krishnabalajiwork/farmai-assistant/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "farmaid",
		Short: "FarmAI daemon and CLI",
		Long:  "FarmAI daemon for running the API server and managing the knowledge index",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.IndexCmd())
	rootCmd.AddCommand(admin.AskCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
