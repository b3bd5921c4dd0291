package service

import (
	"context"

	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

// KnowledgeIndex defines the consumer interface for similarity search.
type KnowledgeIndex interface {
	Search(ctx context.Context, embedding []float32, k int) ([]domain.ScoredChunk, error)
	Model() string
}

// RetrieverConfig controls retrieval breadth and filtering.
type RetrieverConfig struct {
	TopK int
	// ScoreThreshold drops entries scoring below it; zero disables filtering.
	ScoreThreshold float32
}

// DefaultRetrieverConfig returns the default retrieval settings.
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{TopK: 5}
}

// Retriever embeds a question and queries the knowledge index for the
// most similar chunks.
type Retriever struct {
	embedder EmbeddingClient
	index    KnowledgeIndex
	cfg      RetrieverConfig
}

// NewRetriever creates a Retriever.
func NewRetriever(embedder EmbeddingClient, index KnowledgeIndex, cfg RetrieverConfig) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultRetrieverConfig().TopK
	}
	return &Retriever{embedder: embedder, index: index, cfg: cfg}
}

// Retrieve embeds the question and returns the top-k scored chunks, filtered
// by the configured score threshold. A threshold that filters out every entry
// yields an explicitly empty result, not an error and not unfiltered results.
// Embedding spaces from different models are not comparable, so a model
// mismatch between build and query is a configuration error.
func (r *Retriever) Retrieve(ctx context.Context, question string) (domain.RetrievalResult, error) {
	if question == "" {
		return domain.RetrievalResult{}, domain.ErrEmptyQuestion
	}

	if built := r.index.Model(); built != "" && built != r.embedder.EmbeddingModel() {
		return domain.RetrievalResult{}, domain.ErrModelMismatch
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		return domain.RetrievalResult{}, domain.NewDomainErrorWithCause(domain.ErrCodeProvider, "failed to embed question", err)
	}

	entries, err := r.index.Search(ctx, embedding, r.cfg.TopK)
	if err != nil {
		return domain.RetrievalResult{}, err
	}

	if r.cfg.ScoreThreshold > 0 {
		filtered := make([]domain.ScoredChunk, 0, len(entries))
		for _, entry := range entries {
			if entry.Score >= r.cfg.ScoreThreshold {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	return domain.RetrievalResult{Entries: entries}, nil
}
