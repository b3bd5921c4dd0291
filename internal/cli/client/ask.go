package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AskRequest represents the ask API request.
type AskRequest struct {
	Question string `json:"question"`
}

// AskSource represents one knowledge source backing an answer.
type AskSource struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// AskResponse represents the ask API response.
type AskResponse struct {
	Response          string      `json:"response"`
	Sources           []AskSource `json:"sources"`
	Query             string      `json:"query"`
	Workflow          []string    `json:"agent_workflow"`
	Verified          *bool       `json:"verified,omitempty"`
	VerificationError string      `json:"verification_error,omitempty"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var showSources bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a farming question",
		Long:  "Sends a question to the farmai server and prints the answer with its sources.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runClientAsk(cmd, strings.Join(args, " "), showSources, outputJSON)
		},
	}

	cmd.Flags().BoolVarP(&showSources, "sources", "s", true, "Show the knowledge sources behind the answer")

	return cmd
}

func runClientAsk(cmd *cobra.Command, question string, showSources, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Post("/v1/ask", AskRequest{Question: question})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var askResp AskResponse
	if err := json.Unmarshal(resp.Data, &askResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(askResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(askResp.Response)

	if showSources && len(askResp.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range askResp.Sources {
			fmt.Printf("%d. %s (%s)\n", i+1, src.Title, src.Category)
			if src.Excerpt != "" {
				excerpt := src.Excerpt
				if len(excerpt) > 100 {
					excerpt = excerpt[:97] + "..."
				}
				fmt.Printf("   %s\n", excerpt)
			}
		}
	}

	if len(askResp.Workflow) > 0 {
		fmt.Printf("\nWorkflow: %s\n", strings.Join(askResp.Workflow, " -> "))
	}
	if askResp.Verified != nil {
		fmt.Printf("Verified: %t\n", *askResp.Verified)
		if askResp.VerificationError != "" {
			fmt.Printf("Verification note: %s\n", askResp.VerificationError)
		}
	}

	return nil
}
