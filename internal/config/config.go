package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `envconfig:"OPENAI_BASE_URL"`
	EmbeddingModel  string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-ada-002"`
	CompletionModel string `envconfig:"COMPLETION_MODEL" default:"gpt-3.5-turbo"`

	// Retrieval tuning
	ChunkSize       int     `envconfig:"CHUNK_SIZE" default:"1000"`
	ChunkOverlap    int     `envconfig:"CHUNK_OVERLAP" default:"200"`
	RetrieveK       int     `envconfig:"RETRIEVE_K" default:"5"`
	ScoreThreshold  float32 `envconfig:"SCORE_THRESHOLD" default:"0"`
	MaxContextChars int     `envconfig:"MAX_CONTEXT_CHARS" default:"2000"`

	// Knowledge sources beyond the builtin corpus
	DataDir     string `envconfig:"DATA_DIR"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"farmai-knowledge"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Periodic index rebuild; zero disables the refresh worker
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"0"`

	// Optional bearer token protecting the ask endpoint
	APIKey string `envconfig:"API_KEY"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("FARMAI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// Validate checks settings that envconfig cannot express.
func (c *Config) Validate() error {
	if !c.HasOpenAI() {
		return domain.ErrMissingAPIKey
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return domain.NewDomainError(domain.ErrCodeConfiguration,
			fmt.Sprintf("chunk overlap %d must be smaller than chunk size %d", c.ChunkOverlap, c.ChunkSize))
	}
	if c.RetrieveK <= 0 {
		return domain.NewDomainError(domain.ErrCodeConfiguration, "retrieve k must be positive")
	}
	return nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
