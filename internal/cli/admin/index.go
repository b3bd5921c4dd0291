package admin

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/krishnabalajiwork/farmai-assistant/internal/config"
	"github.com/krishnabalajiwork/farmai-assistant/internal/database"
	"github.com/krishnabalajiwork/farmai-assistant/internal/knowledge"
	"github.com/krishnabalajiwork/farmai-assistant/internal/openai"
	"github.com/krishnabalajiwork/farmai-assistant/internal/repository"
	"github.com/krishnabalajiwork/farmai-assistant/internal/service"
	"github.com/krishnabalajiwork/farmai-assistant/internal/storage"
)

// IndexCmd returns the index command for one-shot rebuilds
func IndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the knowledge index",
		Long:  "Load all knowledge documents, chunk and embed them, and replace the vector index",
		RunE:  runIndex,
	}

	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	client := openai.NewClientWithConfig(openai.Config{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		EmbeddingModel:  goopenai.EmbeddingModel(cfg.EmbeddingModel),
		CompletionModel: cfg.CompletionModel,
	})

	var remote knowledge.RemoteStore
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		remote = s3Client
	}

	loader := knowledge.NewLoader(cfg.DataDir, remote)
	docs := loader.Load(ctx)

	chunkRepo := repository.NewChunkRepository(pool)

	chunkCfg := service.DefaultChunkConfig()
	chunkCfg.MaxChars = cfg.ChunkSize
	chunkCfg.Overlap = cfg.ChunkOverlap
	indexSvc := service.NewIndexServiceWithChunking(client, chunkRepo, chunkCfg)

	if err := indexSvc.Build(ctx, docs); err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	count, err := chunkRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chunks: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents into %d chunks\n", len(docs), count)
	return nil
}
