package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/krishnabalajiwork/farmai-assistant/internal/api/handlers"
	"github.com/krishnabalajiwork/farmai-assistant/internal/config"
	"github.com/krishnabalajiwork/farmai-assistant/internal/database"
	"github.com/krishnabalajiwork/farmai-assistant/internal/jobs"
	"github.com/krishnabalajiwork/farmai-assistant/internal/knowledge"
	"github.com/krishnabalajiwork/farmai-assistant/internal/openai"
	"github.com/krishnabalajiwork/farmai-assistant/internal/repository"
	"github.com/krishnabalajiwork/farmai-assistant/internal/server"
	"github.com/krishnabalajiwork/farmai-assistant/internal/service"
	"github.com/krishnabalajiwork/farmai-assistant/internal/storage"
	"github.com/krishnabalajiwork/farmai-assistant/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the farmai API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize Sentry with tracing if a DSN is configured
	if cfg.SentryDSN != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	// Run migrations unless --no-migrate flag is set
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	chunkRepo := repository.NewChunkRepository(pool)

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
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		remote = s3Client
	}

	loader := knowledge.NewLoader(cfg.DataDir, remote)

	chunkCfg := service.DefaultChunkConfig()
	chunkCfg.MaxChars = cfg.ChunkSize
	chunkCfg.Overlap = cfg.ChunkOverlap
	indexSvc := service.NewIndexServiceWithChunking(client, chunkRepo, chunkCfg)

	// Build the index before serving. A failure here is not fatal: the
	// server starts in a not-ready state and the refresh worker (or a
	// manual rebuild) can recover it.
	docs := loader.Load(ctx)
	if err := indexSvc.Build(ctx, docs); err != nil {
		telemetry.CaptureError(ctx, err)
		log.Printf("initial index build failed (serving without index): %v", err)
	} else {
		log.Printf("knowledge index built from %d documents", len(docs))
	}

	retriever := service.NewRetriever(client, indexSvc, service.RetrieverConfig{
		TopK:           cfg.RetrieveK,
		ScoreThreshold: cfg.ScoreThreshold,
	})
	composerCfg := service.DefaultComposerConfig()
	composerCfg.MaxContextChars = cfg.MaxContextChars
	composer := service.NewComposer(retriever, client, composerCfg)
	orchestrator := service.NewOrchestrator(composer, client)

	var refreshWorker *jobs.Worker
	if cfg.RefreshInterval > 0 {
		refreshWorker = jobs.NewWorker(jobs.NewRefreshProcessor(loader, indexSvc), cfg.RefreshInterval)
		go refreshWorker.Start(ctx)
		log.Printf("refresh worker started (interval %s)", cfg.RefreshInterval)
	}

	router := server.NewRouter(server.RouterConfig{
		APIKey:        cfg.APIKey,
		AskHandler:    handlers.NewAskHandler(orchestrator),
		StatusHandler: handlers.NewStatusHandler(indexSvc, chunkRepo),
		ChunksHandler: handlers.NewChunksHandler(chunkRepo),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if refreshWorker != nil {
		refreshWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	// Create a sql.DB connection for golang-migrate
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	// Create postgres driver instance
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Create migrate instance with file source
	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// Run migrations
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Get migration version and status
	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
