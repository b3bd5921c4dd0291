package admin

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/krishnabalajiwork/farmai-assistant/internal/config"
	"github.com/krishnabalajiwork/farmai-assistant/internal/database"
	"github.com/krishnabalajiwork/farmai-assistant/internal/openai"
	"github.com/krishnabalajiwork/farmai-assistant/internal/repository"
	"github.com/krishnabalajiwork/farmai-assistant/internal/service"
)

// AskCmd returns the ask command for answering a question against the
// local index without going through the HTTP API
func AskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question using the local knowledge index",
		Long:  "Run the full agent pipeline against the database index and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	chunkRepo := repository.NewChunkRepository(pool)
	count, err := chunkRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect index: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("knowledge index is empty, run 'farmaid index' first")
	}

	client := openai.NewClientWithConfig(openai.Config{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		EmbeddingModel:  goopenai.EmbeddingModel(cfg.EmbeddingModel),
		CompletionModel: cfg.CompletionModel,
	})

	indexSvc := service.NewIndexService(client, chunkRepo)
	indexSvc.Resume()

	retriever := service.NewRetriever(client, indexSvc, service.RetrieverConfig{
		TopK:           cfg.RetrieveK,
		ScoreThreshold: cfg.ScoreThreshold,
	})
	composerCfg := service.DefaultComposerConfig()
	composerCfg.MaxContextChars = cfg.MaxContextChars
	composer := service.NewComposer(retriever, client, composerCfg)
	orchestrator := service.NewOrchestrator(composer, client)

	resp := orchestrator.Process(ctx, question)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Response)
	if len(resp.Sources) > 0 {
		fmt.Fprintln(out, "\nSources:")
		for _, src := range resp.Sources {
			fmt.Fprintf(out, "  - %s (%s)\n", src.Title, src.Category)
		}
	}
	fmt.Fprintf(out, "\nWorkflow: %s\n", strings.Join(resp.Workflow, " -> "))
	if resp.Verified != nil {
		fmt.Fprintf(out, "Verified: %t\n", *resp.Verified)
	}
	return nil
}
