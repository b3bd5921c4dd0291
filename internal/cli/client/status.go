package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// StatusResponse represents the status API response.
type StatusResponse struct {
	Ready      bool   `json:"ready"`
	Model      string `json:"model,omitempty"`
	ChunkCount int64  `json:"chunk_count"`
}

// StatusCmd creates the status command.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show knowledge index status",
		Long:  "Shows whether the server's knowledge index is ready and how many chunks it holds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStatus(cmd, outputJSON)
		},
	}
}

func runStatus(cmd *cobra.Command, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/v1/status")
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	var status StatusResponse
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return fmt.Errorf("failed to parse status response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(status, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if status.Ready {
		fmt.Println("Index: ready")
	} else {
		fmt.Println("Index: not ready")
	}
	if status.Model != "" {
		fmt.Printf("Embedding model: %s\n", status.Model)
	}
	fmt.Printf("Chunks: %d\n", status.ChunkCount)

	return nil
}

// HealthCmd creates the health command.
func HealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}
			if _, err := api.Get("/health"); err != nil {
				return fmt.Errorf("server unhealthy: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Server is healthy")
			return nil
		},
	}
}
